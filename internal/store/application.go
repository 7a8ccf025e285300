package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/domain"
)

// ApplicationFilter narrows a List call. A nil Status returns every application.
type ApplicationFilter struct {
	Status *domain.ApplicationStatus
}

// ApplicationStore defines the interface for creator application persistence.
// Wallet addresses passed in are expected to be normalized already.
type ApplicationStore interface {
	// Create inserts a new application.
	// Returns ErrWalletExists if the wallet already has one on file.
	Create(ctx context.Context, app *domain.CreatorApplication) error

	// GetByWallet retrieves the application for the given wallet.
	// Returns ErrApplicationNotFound if there is none.
	GetByWallet(ctx context.Context, wallet string) (*domain.CreatorApplication, error)

	// List returns applications ordered by submission time, newest first.
	List(ctx context.Context, filter ApplicationFilter) ([]*domain.CreatorApplication, error)

	// UpdateStatus sets the status and updated_at in a single statement and
	// returns the stored record.
	// Returns ErrApplicationNotFound if there is no application for the wallet.
	UpdateStatus(
		ctx context.Context,
		wallet string,
		status domain.ApplicationStatus,
		updatedAt time.Time,
	) (*domain.CreatorApplication, error)

	// Stats returns per-status counts taken from a single consistent read.
	Stats(ctx context.Context) (*domain.ApplicationStats, error)

	// Delete removes the application for the given wallet.
	// Returns ErrApplicationNotFound if there is none.
	Delete(ctx context.Context, wallet string) error

	// WithTx returns a new ApplicationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ApplicationStore
}
