package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/platform/logger"
	"github.com/crowdchain/crowdchain-api/internal/store"
	"github.com/google/uuid"
)

// ApplicationService manages the creator application lifecycle.
type ApplicationService interface {
	// Submit reconciles the payload, encodes the documents and stores a
	// PENDING application. Returns ErrApplicationExists when the wallet
	// already has one.
	Submit(ctx context.Context, payload domain.SubmissionPayload, docs []domain.Document) (uuid.UUID, error)

	// GetByWallet returns store.ErrApplicationNotFound when there is no application.
	GetByWallet(ctx context.Context, wallet string) (*domain.CreatorApplication, error)

	// List returns applications newest first, optionally filtered by status.
	List(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.CreatorApplication, error)

	// UpdateStatus parses status, then overwrites it together with UpdatedAt.
	UpdateStatus(ctx context.Context, wallet, status string) (*domain.CreatorApplication, error)

	// Stats returns per-status counts.
	Stats(ctx context.Context) (domain.ApplicationStats, error)

	// Delete removes the application for wallet.
	Delete(ctx context.Context, wallet string) error
}

// ApplicationServiceOption customizes an ApplicationService.
type ApplicationServiceOption func(*applicationServiceImpl)

// WithClock replaces time.Now as the source of submission and update times.
func WithClock(now func() time.Time) ApplicationServiceOption {
	return func(s *applicationServiceImpl) {
		s.now = now
	}
}

// WithObserver sets the Observer notified of submissions and status changes.
func WithObserver(observer Observer) ApplicationServiceOption {
	return func(s *applicationServiceImpl) {
		if observer != nil {
			s.observer = observer
		}
	}
}

type applicationServiceImpl struct {
	apps     store.ApplicationStore
	db       store.TxBeginner
	now      func() time.Time
	observer Observer
	logger   *slog.Logger
}

// NewApplicationService creates an ApplicationService.
// When db is non-nil the duplicate check and insert of Submit share a transaction.
func NewApplicationService(
	apps store.ApplicationStore,
	db store.TxBeginner,
	logger *slog.Logger,
	opts ...ApplicationServiceOption,
) ApplicationService {
	if apps == nil {
		panic("application store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &applicationServiceImpl{
		apps:     apps,
		db:       db,
		now:      time.Now,
		observer: NopObserver{},
		logger:   logger.With(slog.String("component", "application_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit implements ApplicationService.
func (s *applicationServiceImpl) Submit(
	ctx context.Context,
	payload domain.SubmissionPayload,
	docs []domain.Document,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sub := domain.ReconcileSubmission(payload)
	if err := sub.Validate(); err != nil {
		return uuid.Nil, err
	}

	encoded, err := domain.EncodeDocuments(docs)
	if err != nil {
		return uuid.Nil, err
	}

	app, err := domain.NewCreatorApplication(sub, encoded, s.now().UTC())
	if err != nil {
		return uuid.Nil, err
	}

	err = s.inTx(ctx, func(ctx context.Context, apps store.ApplicationStore) error {
		_, err := apps.GetByWallet(ctx, app.WalletAddress)
		switch {
		case err == nil:
			return ErrApplicationExists
		case !errors.Is(err, store.ErrApplicationNotFound):
			return err
		}
		return apps.Create(ctx, app)
	})
	if err != nil {
		if errors.Is(err, ErrApplicationExists) || errors.Is(err, store.ErrWalletExists) {
			log.Debug("wallet already has an application", slog.String("wallet_address", app.WalletAddress))
			return uuid.Nil, ErrApplicationExists
		}
		log.Error("failed to store creator application", slog.String("error", err.Error()))
		return uuid.Nil, ErrInternal
	}

	log.Info("creator application submitted",
		slog.String("application_id", app.ID.String()),
		slog.Int("documents", len(app.VerificationDocs)))
	s.observer.ApplicationSubmitted()
	return app.ID, nil
}

// GetByWallet implements ApplicationService.
func (s *applicationServiceImpl) GetByWallet(ctx context.Context, wallet string) (*domain.CreatorApplication, error) {
	app, err := s.apps.GetByWallet(ctx, domain.NormalizeWalletAddress(wallet))
	if err != nil {
		return nil, s.lookupError(ctx, "get", err)
	}
	return app, nil
}

// List implements ApplicationService.
func (s *applicationServiceImpl) List(
	ctx context.Context,
	status *domain.ApplicationStatus,
) ([]*domain.CreatorApplication, error) {
	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be PENDING, APPROVED, or REJECTED",
			domain.ErrInvalidApplicationStatus)
	}

	apps, err := s.apps.List(ctx, store.ApplicationFilter{Status: status})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list creator applications",
			slog.String("error", err.Error()))
		return nil, ErrInternal
	}
	return apps, nil
}

// UpdateStatus implements ApplicationService.
func (s *applicationServiceImpl) UpdateStatus(
	ctx context.Context,
	wallet, status string,
) (*domain.CreatorApplication, error) {
	parsed, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.UpdateStatus(ctx, domain.NormalizeWalletAddress(wallet), parsed, s.now().UTC())
	if err != nil {
		return nil, s.lookupError(ctx, "update_status", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("creator application status changed",
		slog.String("application_id", app.ID.String()),
		slog.String("status", string(parsed)))
	s.observer.ApplicationStatusChanged(parsed)
	return app, nil
}

// Stats implements ApplicationService.
func (s *applicationServiceImpl) Stats(ctx context.Context) (domain.ApplicationStats, error) {
	stats, err := s.apps.Stats(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to compute application stats",
			slog.String("error", err.Error()))
		return domain.ApplicationStats{}, ErrInternal
	}
	return *stats, nil
}

// Delete implements ApplicationService.
func (s *applicationServiceImpl) Delete(ctx context.Context, wallet string) error {
	wallet = domain.NormalizeWalletAddress(wallet)
	if err := s.apps.Delete(ctx, wallet); err != nil {
		return s.lookupError(ctx, "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("creator application deleted",
		slog.String("wallet_address", wallet))
	return nil
}

// lookupError passes not-found through and hides everything else.
func (s *applicationServiceImpl) lookupError(ctx context.Context, op string, err error) error {
	if errors.Is(err, store.ErrApplicationNotFound) {
		return store.ErrApplicationNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("creator application operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return ErrInternal
}

func (s *applicationServiceImpl) inTx(
	ctx context.Context,
	fn func(ctx context.Context, apps store.ApplicationStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.apps)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.apps.WithTx(tx))
	})
}
