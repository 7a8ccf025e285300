package store

import (
	"errors"
	"fmt"
)

// Sentinels returned by every store implementation.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants (ErrAccountNotFound, ErrApplicationNotFound)
	// wrap it so errors.Is(err, ErrNotFound) matches any of them.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrAccountNotFound indicates that the requested account does not exist.
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrApplicationNotFound indicates that no creator application exists
	// for the requested wallet.
	ErrApplicationNotFound = fmt.Errorf("%w: creator application", ErrNotFound)

	// ErrEmailExists indicates that an account with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrWalletExists indicates that the wallet already has an application on file.
	ErrWalletExists = fmt.Errorf("%w: wallet address", ErrDuplicate)
)

// IsNotFoundError matches ErrNotFound and every entity-specific variant.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError matches ErrDuplicate and every entity-specific variant.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which store operation failed. Its message carries the
// driver error for logs; only Err takes part in errors.Is matching.
type StoreError struct {
	Entity    string // "account" or "creator_application"
	Operation string // e.g. "create", "update_status"
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Entity, e.Operation, e.Message)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the entity and operation that produced it.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
