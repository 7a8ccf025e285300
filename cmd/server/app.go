package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/crowdchain/crowdchain-api/internal/config"
	"github.com/crowdchain/crowdchain-api/internal/platform/metrics"
	"github.com/crowdchain/crowdchain-api/internal/platform/postgres"
	"github.com/crowdchain/crowdchain-api/internal/platform/ratelimit"
	"github.com/crowdchain/crowdchain-api/internal/service"
	"github.com/crowdchain/crowdchain-api/internal/service/auth"
)

const bytesPerMB = 1 << 20

// application holds the wired dependencies of a running server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	redis   *redis.Client
	handler http.Handler
}

// newApplication builds stores, services and the router on top of an open
// database connection.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	m := metrics.New()

	accounts := postgres.NewPostgresAccountStore(db, logger)
	applicationStore := postgres.NewPostgresApplicationStore(db, logger)

	credentials := service.NewCredentialService(
		accounts,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		jwtService,
		m,
		logger,
	)
	applications := service.NewApplicationService(
		applicationStore,
		db,
		logger,
		service.WithObserver(m),
	)

	limiter, redisClient, err := newLimiter(cfg.RateLimit, logger)
	if err != nil {
		return nil, err
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}
	app.handler = newRouter(routerDeps{
		logger:         logger,
		credentials:    credentials,
		applications:   applications,
		jwtService:     jwtService,
		adminEmails:    cfg.Auth.AdminEmails,
		corsOrigins:    cfg.Server.CORSOrigins,
		limiter:        limiter,
		metrics:        m,
		maxUploadBytes: int64(cfg.Server.MaxUploadMB) * bytesPerMB,
	})
	return app, nil
}

// newLimiter picks the rate limiter for /auth. A nil limiter means rate
// limiting is disabled. The returned client, when non-nil, must be closed.
func newLimiter(cfg config.RateLimitConfig, logger *slog.Logger) (ratelimit.Limiter, *redis.Client, error) {
	if !cfg.Enabled {
		logger.Info("rate limiting disabled")
		return nil, nil, nil
	}

	if cfg.RedisURL == "" {
		logger.Info("using in-process rate limiter",
			slog.Float64("requests_per_second", cfg.RequestsPerSecond),
			slog.Int("burst", cfg.Burst))
		return ratelimit.NewMemoryLimiter(cfg.RequestsPerSecond, cfg.Burst), nil, nil
	}

	client, err := ratelimit.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure redis rate limiter: %w", err)
	}
	logger.Info("using redis rate limiter",
		slog.Float64("requests_per_second", cfg.RequestsPerSecond),
		slog.Int("burst", cfg.Burst))
	return ratelimit.NewRedisLimiter(client, cfg.RequestsPerSecond, cfg.Burst), client, nil
}

// cleanup releases external connections.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}
}
