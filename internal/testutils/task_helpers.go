package testutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/require"
)

// CreateTestTask creates a valid task with a unique title for testing.
// It does not save the task to any store.
func CreateTestTask(t *testing.T) *domain.Task {
	t.Helper()
	title := fmt.Sprintf("test task %s", uuid.New().String()[:8])
	task, err := domain.NewTask(title, "created by tests", "open")
	require.NoError(t, err, "Failed to create test task")
	return task
}

// MustInsertTask creates a test task and stores it, failing the test on error.
func MustInsertTask(ctx context.Context, t *testing.T, s store.TaskStore) *domain.Task {
	t.Helper()
	task := CreateTestTask(t)
	require.NoError(t, s.Create(ctx, task), "Failed to insert test task")
	return task
}
