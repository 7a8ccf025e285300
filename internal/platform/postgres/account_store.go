package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/platform/logger"
	"github.com/crowdchain/crowdchain-api/internal/store"
	"github.com/google/uuid"
)

// PostgresAccountStore implements store.AccountStore on PostgreSQL.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL account store.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, slog.Default() is used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*PostgresAccountStore)(nil)

// Create implements store.AccountStore.Create.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO accounts (id, email, hashed_password, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.HashedPassword,
		account.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("account email already exists", slog.String("account_id", account.ID.String()))
			return MapUniqueViolation(err, store.ErrEmailExists)
		}
		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return store.NewStoreError("account", "create", "insert failed", MapError(err))
	}

	log.Info("account created", slog.String("account_id", account.ID.String()))
	return nil
}

// GetByID implements store.AccountStore.GetByID.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, email, hashed_password, created_at
		FROM accounts
		WHERE id = $1
	`
	return s.getOne(ctx, query, id)
}

// GetByEmail implements store.AccountStore.GetByEmail.
func (s *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT id, email, hashed_password, created_at
		FROM accounts
		WHERE email = $1
	`
	return s.getOne(ctx, query, email)
}

func (s *PostgresAccountStore) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.HashedPassword,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load account",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("account", "get", "query failed", MapError(err))
	}
	return &account, nil
}

// WithTx implements store.AccountStore.WithTx.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{
		db:     tx,
		logger: s.logger,
	}
}
