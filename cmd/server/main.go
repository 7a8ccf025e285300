// Package main runs the CrowdChain API server: account signup and login, and
// the creator application intake and review endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/crowdchain/crowdchain-api/internal/config"
	"github.com/crowdchain/crowdchain-api/internal/platform/logger"
	"github.com/crowdchain/crowdchain-api/internal/platform/postgres/migrations"
	"github.com/crowdchain/crowdchain-api/internal/redact"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, status, reset) and exit",
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		slog.Error("server exited with error", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}
}

// run loads configuration, connects to the database, applies pending
// migrations and serves until ctx is canceled. A non-empty migrateCmd runs
// that migration command instead of serving.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		slog.Bool("admin_gating", len(cfg.Auth.AdminEmails) > 0))

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return migrations.Run(ctx, db, migrateCmd, log)
	}

	if err := migrations.Run(ctx, db, migrations.CommandUp, log); err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, db, log)
	if err != nil {
		_ = db.Close()
		return err
	}

	return app.run(ctx)
}
