package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/migrations"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store drivers accepted in store.driver.
const (
	driverPostgres = migrations.DriverPostgres
	driverSQLite   = migrations.DriverSQLite
	driverMemory   = "memory"
)

// connectTimeout bounds the initial connectivity check.
const connectTimeout = 5 * time.Second

// openDatabase opens and pings the SQL database named by cfg.
func openDatabase(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Driver {
	case driverPostgres:
		db, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
		}
		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return db, nil

	case driverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported SQL store driver %q", cfg.Driver)
	}
}

// openTaskStore creates the task store for cfg.Driver. The returned *sql.DB
// is nil for the memory driver; otherwise the caller must close it.
func openTaskStore(
	ctx context.Context,
	cfg config.StoreConfig,
	logger *slog.Logger,
) (store.TaskStore, *sql.DB, error) {
	if cfg.Driver == driverMemory {
		logger.Warn("using in-memory task store, data will not survive a restart")
		return memory.NewTaskStore(logger), nil, nil
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := migrations.Up(ctx, db, cfg.Driver, logger); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	switch cfg.Driver {
	case driverPostgres:
		return postgres.NewPostgresTaskStore(db, logger), db, nil
	default:
		return sqlite.NewTaskStore(db, logger), db, nil
	}
}
