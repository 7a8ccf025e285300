package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/platform/logger"
	"github.com/crowdchain/crowdchain-api/internal/store"
	"github.com/lib/pq"
)

const applicationColumns = `id, wallet_address, full_name, email, professional_title,
		linkedin_url, website_url, bio, verification_docs, status, submitted_at, updated_at`

// PostgresApplicationStore implements store.ApplicationStore on PostgreSQL.
// Verification documents live in a TEXT[] column.
type PostgresApplicationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresApplicationStore creates a new PostgreSQL creator application store.
// If logger is nil, slog.Default() is used.
func NewPostgresApplicationStore(db store.DBTX, logger *slog.Logger) *PostgresApplicationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresApplicationStore{
		db:     db,
		logger: logger.With(slog.String("component", "application_store")),
	}
}

var _ store.ApplicationStore = (*PostgresApplicationStore)(nil)

// Create implements store.ApplicationStore.Create.
func (s *PostgresApplicationStore) Create(ctx context.Context, app *domain.CreatorApplication) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO creator_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		app.ID,
		app.WalletAddress,
		app.FullName,
		app.Email,
		app.ProfessionalTitle,
		nullString(app.LinkedInURL),
		nullString(app.WebsiteURL),
		nullString(app.Bio),
		pq.Array(app.VerificationDocs),
		string(app.Status),
		app.SubmittedAt,
		app.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("wallet already has an application",
				slog.String("wallet_address", app.WalletAddress))
			return MapUniqueViolation(err, store.ErrWalletExists)
		}
		log.Error("failed to create creator application",
			slog.String("error", err.Error()),
			slog.String("application_id", app.ID.String()))
		return store.NewStoreError("creator_application", "create", "insert failed", MapError(err))
	}

	log.Info("creator application created",
		slog.String("application_id", app.ID.String()),
		slog.Int("documents", len(app.VerificationDocs)))
	return nil
}

// GetByWallet implements store.ApplicationStore.GetByWallet.
func (s *PostgresApplicationStore) GetByWallet(
	ctx context.Context,
	wallet string,
) (*domain.CreatorApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM creator_applications WHERE wallet_address = $1`

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, wallet))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrApplicationNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load creator application",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("creator_application", "get", "query failed", MapError(err))
	}
	return app, nil
}

// List implements store.ApplicationStore.List.
func (s *PostgresApplicationStore) List(
	ctx context.Context,
	filter store.ApplicationFilter,
) ([]*domain.CreatorApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + applicationColumns + ` FROM creator_applications`
	var args []any
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY submitted_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list creator applications", slog.String("error", err.Error()))
		return nil, store.NewStoreError("creator_application", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	apps := make([]*domain.CreatorApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			log.Error("failed to scan creator application", slog.String("error", err.Error()))
			return nil, store.NewStoreError("creator_application", "list", "scan failed", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating creator applications", slog.String("error", err.Error()))
		return nil, store.NewStoreError("creator_application", "list", "row iteration failed", MapError(err))
	}

	return apps, nil
}

// UpdateStatus implements store.ApplicationStore.UpdateStatus.
func (s *PostgresApplicationStore) UpdateStatus(
	ctx context.Context,
	wallet string,
	status domain.ApplicationStatus,
	updatedAt time.Time,
) (*domain.CreatorApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return nil, domain.ErrInvalidApplicationStatus
	}

	query := `
		UPDATE creator_applications
		SET status = $2, updated_at = $3
		WHERE wallet_address = $1
		RETURNING ` + applicationColumns

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, wallet, string(status), updatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrApplicationNotFound
		}
		log.Error("failed to update creator application status",
			slog.String("error", err.Error()),
			slog.String("status", string(status)))
		return nil, store.NewStoreError("creator_application", "update_status", "update failed", MapError(err))
	}

	log.Info("creator application status updated",
		slog.String("application_id", app.ID.String()),
		slog.String("status", string(status)))
	return app, nil
}

// Stats implements store.ApplicationStore.Stats.
func (s *PostgresApplicationStore) Stats(ctx context.Context) (*domain.ApplicationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED')
		FROM creator_applications
	`

	var stats domain.ApplicationStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Approved,
		&stats.Rejected,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to compute application stats",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("creator_application", "stats", "query failed", MapError(err))
	}
	return &stats, nil
}

// Delete implements store.ApplicationStore.Delete.
func (s *PostgresApplicationStore) Delete(ctx context.Context, wallet string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM creator_applications WHERE wallet_address = $1`, wallet)
	if err != nil {
		log.Error("failed to delete creator application", slog.String("error", err.Error()))
		return store.NewStoreError("creator_application", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrApplicationNotFound); err != nil {
		return err
	}

	log.Info("creator application deleted", slog.String("wallet_address", wallet))
	return nil
}

// WithTx implements store.ApplicationStore.WithTx.
func (s *PostgresApplicationStore) WithTx(tx *sql.Tx) store.ApplicationStore {
	return &PostgresApplicationStore{
		db:     tx,
		logger: s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*domain.CreatorApplication, error) {
	var (
		app                    domain.CreatorApplication
		linkedIn, website, bio sql.NullString
		docs                   pq.StringArray
		status                 string
	)

	if err := row.Scan(
		&app.ID,
		&app.WalletAddress,
		&app.FullName,
		&app.Email,
		&app.ProfessionalTitle,
		&linkedIn,
		&website,
		&bio,
		&docs,
		&status,
		&app.SubmittedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}

	app.LinkedInURL = linkedIn.String
	app.WebsiteURL = website.String
	app.Bio = bio.String
	app.Status = domain.ApplicationStatus(status)
	app.VerificationDocs = []string(docs)
	if app.VerificationDocs == nil {
		app.VerificationDocs = []string{}
	}

	return &app, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
