// Package migrations embeds the task schema for each supported SQL dialect
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

// TableName is the goose version table used by this service.
const TableName = "schema_migrations"

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Commands accepted by Run.
var Commands = []string{"up", "down", "reset", "status", "version"}

// slogGooseLogger adapts the goose logger interface to use slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding to slog.Error.
// It does not exit; the error is returned to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Up applies all pending migrations for driver.
func Up(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	return Run(ctx, db, driver, "up", logger)
}

// Run executes a goose command (one of Commands) against db using the
// embedded migrations for driver.
func Run(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "migrations"), slog.String("driver", driver))

	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedded)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	log.Info("running migration command", slog.String("command", command))

	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "reset":
		err = goose.ResetContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "version":
		err = goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, Commands)
	}
	if err != nil {
		log.Error("migration command failed",
			slog.String("command", command),
			slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration command completed", slog.String("command", command))
	return nil
}

// dialectFor returns the goose dialect and embedded directory for a store driver.
func dialectFor(driver string) (string, string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", "postgres", nil
	case DriverSQLite:
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for store driver %q", driver)
	}
}
