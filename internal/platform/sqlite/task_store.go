package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open opens the SQLite database at path and verifies the connection.
// SQLite allows a single writer, so the pool is limited to one connection;
// concurrent callers queue in database/sql instead of failing with SQLITE_BUSY.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return db, nil
}

// TaskStore implements store.TaskStore on a SQLite database.
// Timestamps are stored as Unix nanoseconds.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore over db, which must already carry the
// tasks schema. If logger is nil, slog.Default() is used.
func NewTaskStore(db store.DBTX, l *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor invariant, a store without a database is a wiring bug
		panic("db cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: l.With(slog.String("component", "task_store"), slog.String("driver", DriverName)),
	}
}

const selectTaskColumns = `SELECT task_id, title, description, status, created_at, updated_at FROM tasks`

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, selectTaskColumns+` WHERE task_id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}
	return task, nil
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "create", "validation failed", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (task_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID.String(),
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt.UnixNano(),
		task.UpdatedAt.UnixNano(),
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate task rejected",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()))
			return mapped
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "insert failed", mapped)
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	return nil
}

// UpdateFields implements store.TaskStore.UpdateFields with upsert semantics.
// A title held by a different task fails the unique index and leaves both
// rows unchanged.
func (s *TaskStore) UpdateFields(
	ctx context.Context,
	id uuid.UUID,
	title, description, status string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC().UnixNano()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (task_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (task_id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		id.String(), title, description, status, now, now,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			return mapped
		}
		log.Error("failed to write task fields",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "update", "upsert failed", mapped)
	}

	log.Debug("task fields written", slog.String("task_id", id.String()))
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, id.String())
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", "rows affected unavailable", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}

// FindByTitle implements store.TaskStore.FindByTitle.
func (s *TaskStore) FindByTitle(ctx context.Context, title string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectTaskColumns+` WHERE title = ?`, title)
	if err != nil {
		log.Error("failed to query tasks by title", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_by_title", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "find_by_title", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "find_by_title", "row iteration failed", err)
	}
	return tasks, nil
}

// Ping implements store.TaskStore.Ping.
func (s *TaskStore) Ping(ctx context.Context) error {
	if p, ok := s.db.(store.Pinger); ok {
		return p.PingContext(ctx)
	}
	var one int
	return s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task               domain.Task
		createdAt, updated int64
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&createdAt,
		&updated,
	); err != nil {
		return nil, err
	}
	task.CreatedAt = time.Unix(0, createdAt).UTC()
	task.UpdatedAt = time.Unix(0, updated).UTC()
	return &task, nil
}
