package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task persistence, keyed by task ID.
type TaskStore interface {
	// GetByID retrieves a task by exact key match.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Create stores a complete new task.
	// Returns ErrTaskTitleExists if another task already has the same title.
	// The title check and the insert are a single atomic store operation.
	Create(ctx context.Context, task *domain.Task) error

	// UpdateFields overwrites title, description and status for the given key.
	// It has upsert semantics: if no task exists under id, one is created.
	// Returns ErrTaskTitleExists if the title belongs to a different task.
	UpdateFields(ctx context.Context, id uuid.UUID, title, description, status string) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByTitle returns every task whose title equals title.
	// Returns an empty slice if none match.
	FindByTitle(ctx context.Context, title string) ([]*domain.Task, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
