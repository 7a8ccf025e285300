// Package migrations embeds the SQL schema migrations and runs them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// FS holds the versioned SQL files.
//
//go:embed *.sql
var FS embed.FS

// Supported commands for Run.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
	CommandReset  = "reset"
)

// Seams for tests.
var (
	gooseUp     = goose.UpContext
	gooseDown   = goose.DownContext
	gooseStatus = goose.StatusContext
	gooseReset  = goose.ResetContext
)

// Run applies command against db using the embedded migrations.
func Run(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	goose.SetBaseFS(FS)
	goose.SetLogger(&slogGooseLogger{logger: logger.With(slog.String("component", "migrations"))})
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case CommandUp:
		err = gooseUp(ctx, db, ".")
	case CommandDown:
		err = gooseDown(ctx, db, ".")
	case CommandStatus:
		err = gooseStatus(ctx, db, ".")
	case CommandReset:
		err = gooseReset(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// slogGooseLogger adapts slog to goose.Logger.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. goose calls it for unrecoverable problems but
// the caller decides whether to exit.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
