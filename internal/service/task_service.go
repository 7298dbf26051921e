package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskFields is the client-supplied content of a task. Description may be
// empty; Title and Status may not.
type TaskFields struct {
	Title       string
	Description string
	Status      string
}

// TaskService provides the task operations exposed over HTTP.
// Task IDs are passed in their raw textual form and validated here.
type TaskService interface {
	// GetTask returns the task with the given ID.
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// CreateTask stores a new task with a generated ID and returns it.
	CreateTask(ctx context.Context, fields TaskFields) (*domain.Task, error)

	// UpdateTask overwrites title, description and status of the task.
	UpdateTask(ctx context.Context, taskID string, fields TaskFields) error

	// DeleteTask removes the task.
	DeleteTask(ctx context.Context, taskID string) error
}

// TaskServiceOptions configures optional TaskService behaviour.
type TaskServiceOptions struct {
	// StrictUpdate makes UpdateTask fail with ErrTaskNotFound for an unknown
	// ID instead of creating the task.
	StrictUpdate bool
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store  store.TaskStore
	opts   TaskServiceOptions
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(
	taskStore store.TaskStore,
	opts TaskServiceOptions,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:  taskStore,
		opts:   opts,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	id, err := domain.ParseTaskID(taskID)
	if err != nil {
		return nil, invalidIdentifier("get_task", err)
	}

	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeFailure(ctx, "get_task", "failed to retrieve task", taskID, err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask.
// The title lookup answers the common case cheaply; the store's unique title
// constraint decides when two creates race.
func (s *taskServiceImpl) CreateTask(ctx context.Context, fields TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireFields("create_task", fields); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByTitle(ctx, fields.Title)
	if err != nil {
		return nil, s.storeFailure(ctx, "create_task", "failed to check title", "", err)
	}
	if len(existing) > 0 {
		log.Debug("title already in use", slog.String("task_id", existing[0].ID.String()))
		return nil, ErrDuplicateTask
	}

	task, err := domain.NewTask(fields.Title, fields.Description, fields.Status)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "failed to create task object", err)
	}

	if err := s.store.Create(ctx, task); err != nil {
		return nil, s.storeFailure(ctx, "create_task", "failed to save task", task.ID.String(), err)
	}

	log.Info("task created", slog.String("task_id", task.ID.String()))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask.
// By default an unknown ID is written as a new task; with StrictUpdate it
// fails with ErrTaskNotFound.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, taskID string, fields TaskFields) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := domain.ParseTaskID(taskID)
	if err != nil {
		return invalidIdentifier("update_task", err)
	}
	if err := requireFields("update_task", fields); err != nil {
		return err
	}

	_, err = s.store.GetByID(ctx, id)
	switch {
	case err == nil:
	case store.IsNotFoundError(err):
		if s.opts.StrictUpdate {
			return ErrTaskNotFound
		}
		log.Debug("updating unknown task id, it will be created", slog.String("task_id", taskID))
	default:
		return s.storeFailure(ctx, "update_task", "failed to read task", taskID, err)
	}

	if err := s.store.UpdateFields(ctx, id, fields.Title, fields.Description, fields.Status); err != nil {
		return s.storeFailure(ctx, "update_task", "failed to write task", taskID, err)
	}

	log.Info("task updated", slog.String("task_id", taskID))
	return nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := domain.ParseTaskID(taskID)
	if err != nil {
		return invalidIdentifier("delete_task", err)
	}

	if _, err := s.store.GetByID(ctx, id); err != nil {
		return s.storeFailure(ctx, "delete_task", "failed to read task", taskID, err)
	}

	// A concurrent delete between the read and here surfaces as ErrTaskNotFound.
	if err := s.store.Delete(ctx, id); err != nil {
		return s.storeFailure(ctx, "delete_task", "failed to delete task", taskID, err)
	}

	log.Info("task deleted", slog.String("task_id", taskID))
	return nil
}

// storeFailure translates a store error and logs the unexpected ones.
func (s *taskServiceImpl) storeFailure(ctx context.Context, operation, message, taskID string, err error) error {
	svcErr := NewTaskServiceError(operation, message, err)
	if _, unexpected := svcErr.(*TaskServiceError); unexpected {
		logger.FromContextOrDefault(ctx, s.logger).Error(message,
			slog.String("operation", operation),
			slog.String("task_id", taskID),
			slog.String("error", redact.Error(err)))
	}
	return svcErr
}

func invalidIdentifier(operation string, err error) error {
	return &TaskServiceError{
		Operation: operation,
		Message:   err.Error(),
		Err:       ErrInvalidIdentifier,
	}
}

func requireFields(operation string, fields TaskFields) error {
	if fields.Title == "" {
		return missingFieldError(operation, "title")
	}
	if fields.Status == "" {
		return missingFieldError(operation, "status")
	}
	return nil
}
