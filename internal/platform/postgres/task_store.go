package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor invariant, a store without a database is a wiring bug
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := `
		SELECT task_id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE task_id = $1
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "get", "query failed", MapError(err))
	}

	return &task, nil
}

// Create implements store.TaskStore.Create.
// Returns store.ErrTaskTitleExists if another task already uses the title.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "validation failed", err)
	}

	query := `
		INSERT INTO tasks (task_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate task rejected",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()))
			return MapError(err)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Info("task created successfully", slog.String("task_id", task.ID.String()))
	return nil
}

// UpdateFields implements store.TaskStore.UpdateFields.
// A missing task is inserted. The title's unique constraint is checked by
// the same statement, so a conflicting rename leaves both rows unchanged.
func (s *PostgresTaskStore) UpdateFields(
	ctx context.Context,
	id uuid.UUID,
	title, description, status string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	query := `
		INSERT INTO tasks (task_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (task_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, id, title, description, status, now)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapError(err)
		}
		log.Error("failed to write task fields",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "update", "upsert failed", MapError(err))
	}

	log.Info("task fields written", slog.String("task_id", id.String()))
	return nil
}

// Delete implements store.TaskStore.Delete.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
			return err
		}
		return store.NewStoreError("task", "delete", "rows affected unavailable", err)
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// FindByTitle implements store.TaskStore.FindByTitle.
// Returns an empty slice if no task has the title.
func (s *PostgresTaskStore) FindByTitle(ctx context.Context, title string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT task_id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE title = $1
	`
	rows, err := s.db.QueryContext(ctx, query, title)
	if err != nil {
		log.Error("failed to query tasks by title", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_by_title", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "find_by_title", "scan failed", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_by_title", "row iteration failed", err)
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Ping implements store.TaskStore.Ping.
// Transactions cannot ping, so they fall back to a trivial query.
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	if p, ok := s.db.(store.Pinger); ok {
		return p.PingContext(ctx)
	}
	var one int
	return s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}
