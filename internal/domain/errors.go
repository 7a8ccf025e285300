package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidApplicationStatus is returned when a status is not one of
	// PENDING, APPROVED or REJECTED.
	ErrInvalidApplicationStatus = errors.New("invalid application status")

	// ErrTooManyDocuments is returned when more verification documents are
	// attached than MaxVerificationDocs.
	ErrTooManyDocuments = errors.New("too many verification documents")

	// ErrDocumentTooLarge is returned when a verification document exceeds
	// MaxDocumentSize.
	ErrDocumentTooLarge = errors.New("verification document too large")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a single invalid field. It wraps a sentinel
// (ErrValidation by default) so callers can match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
// A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets a ValidationError match ErrValidation regardless of the sentinel it wraps.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidationError reports whether err is any validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
