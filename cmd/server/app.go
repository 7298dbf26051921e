package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds the shared application dependencies. Everything here is
// built once before the router and never reassigned while serving.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory store is in use.
	db          *sql.DB
	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication opens the configured store and wires the task service.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	taskStore, db, err := openTaskStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	app, err := newApplicationWithStore(cfg, logger, taskStore)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	app.db = db
	return app, nil
}

// newApplicationWithStore wires the application around an existing store.
func newApplicationWithStore(
	cfg *config.Config,
	logger *slog.Logger,
	taskStore store.TaskStore,
) (*application, error) {
	taskService, err := service.NewTaskService(
		taskStore,
		service.TaskServiceOptions{StrictUpdate: cfg.Tasks.StrictUpdate},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		taskStore:   taskStore,
		taskService: taskService,
	}, nil
}

// errorMapping returns the configured status code mapping.
func (app *application) errorMapping() api.ErrorMapping {
	if app.config.API.LegacyStatusCodes {
		return api.LegacyErrorMapping
	}
	return api.StandardErrorMapping
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return
	}
	app.logger.Info("database connection closed")
}
