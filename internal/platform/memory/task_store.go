// Package memory provides an in-memory implementation of store.TaskStore.
// Task data is lost when the process stops; it serves tests and
// single-process deployments that do not need durability.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskStore is a map-backed store.TaskStore. A secondary title index gives
// the same uniqueness guarantee as the SQL stores' unique constraint: the
// check and the write happen under one lock.
type TaskStore struct {
	mu      sync.RWMutex
	tasks   map[uuid.UUID]domain.Task
	byTitle map[string]uuid.UUID
	logger  *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore. If logger is nil, slog.Default() is used.
func NewTaskStore(l *slog.Logger) *TaskStore {
	if l == nil {
		l = slog.Default()
	}
	return &TaskStore{
		tasks:   make(map[uuid.UUID]domain.Task),
		byTitle: make(map[string]uuid.UUID),
		logger:  l.With(slog.String("component", "task_store")),
	}
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task not found",
			slog.String("task_id", id.String()))
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "create", "validation failed", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byTitle[task.Title]; taken {
		return store.ErrTaskTitleExists
	}
	if _, exists := s.tasks[task.ID]; exists {
		return store.NewStoreError("task", "create", "task ID already exists", store.ErrDuplicate)
	}

	s.tasks[task.ID] = *task
	s.byTitle[task.Title] = task.ID

	logger.FromContextOrDefault(ctx, s.logger).Debug("task created",
		slog.String("task_id", task.ID.String()))
	return nil
}

// UpdateFields implements store.TaskStore.UpdateFields with upsert semantics.
func (s *TaskStore) UpdateFields(
	ctx context.Context,
	id uuid.UUID,
	title, description, status string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, taken := s.byTitle[title]; taken && owner != id {
		return store.ErrTaskTitleExists
	}

	now := time.Now().UTC()
	task, exists := s.tasks[id]
	if exists {
		delete(s.byTitle, task.Title)
	} else {
		task = domain.Task{ID: id, CreatedAt: now}
	}
	task.Title = title
	task.Description = description
	task.Status = status
	task.UpdatedAt = now

	s.tasks[id] = task
	s.byTitle[title] = id

	logger.FromContextOrDefault(ctx, s.logger).Debug("task fields written",
		slog.String("task_id", id.String()),
		slog.Bool("inserted", !exists))
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	delete(s.byTitle, task.Title)

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted",
		slog.String("task_id", id.String()))
	return nil
}

// FindByTitle implements store.TaskStore.FindByTitle.
func (s *TaskStore) FindByTitle(_ context.Context, title string) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []*domain.Task{}
	if id, ok := s.byTitle[title]; ok {
		task := s.tasks[id]
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

// Ping implements store.TaskStore.Ping. The in-memory store is always reachable.
func (s *TaskStore) Ping(_ context.Context) error {
	return nil
}
