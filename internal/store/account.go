package store

import (
	"context"
	"database/sql"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/google/uuid"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account. The account's password must already be hashed.
	// Returns ErrEmailExists if the email is already taken, including when a
	// concurrent signup wins the race on the unique index.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by its normalized email address.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// WithTx returns a new AccountStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AccountStore
}
