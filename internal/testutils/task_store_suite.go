package testutils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ignoreTimestamps compares tasks by identity and content only.
var ignoreTimestamps = cmpopts.IgnoreFields(domain.Task{}, "CreatedAt", "UpdatedAt")

// RunTaskStoreSuite runs the behaviour every store.TaskStore must provide.
// newStore is called once per subtest and must return an empty store.
func RunTaskStoreSuite(t *testing.T, newStore func(t *testing.T) store.TaskStore) {
	t.Helper()

	t.Run("CreateThenGet", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		task := CreateTestTask(t)
		require.NoError(t, s.Create(ctx, task))

		got, err := s.GetByID(ctx, task.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(task, got, ignoreTimestamps); diff != "" {
			t.Errorf("GetByID() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)

		got, err := s.GetByID(context.Background(), uuid.New())
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound), "got %v", err)
	})

	t.Run("CreateDuplicateTitle", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		first := MustInsertTask(ctx, t, s)
		second, err := domain.NewTask(first.Title, "other", "open")
		require.NoError(t, err)

		err = s.Create(ctx, second)
		assert.True(t, errors.Is(err, store.ErrTaskTitleExists), "got %v", err)

		_, err = s.GetByID(ctx, second.ID)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound), "rejected task must not be stored")
	})

	t.Run("ConcurrentCreateSameTitle", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		const writers = 8
		title := fmt.Sprintf("race %s", uuid.New().String()[:8])

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				task, err := domain.NewTask(title, "", "open")
				if err != nil {
					errs <- err
					return
				}
				errs <- s.Create(ctx, task)
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errors.Is(err, store.ErrTaskTitleExists), "unexpected error: %v", err)
		}
		assert.Equal(t, 1, succeeded, "exactly one concurrent create should win")

		found, err := s.FindByTitle(ctx, title)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("UpdateFieldsExisting", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		task := MustInsertTask(ctx, t, s)
		require.NoError(t, s.UpdateFields(ctx, task.ID, task.Title, "whole", "done"))

		got, err := s.GetByID(ctx, task.ID)
		require.NoError(t, err)
		want := &domain.Task{ID: task.ID, Title: task.Title, Description: "whole", Status: "done"}
		if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
			t.Errorf("after UpdateFields mismatch (-want +got):\n%s", diff)
		}
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("UpdateFieldsRenameFreesOldTitle", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		task := MustInsertTask(ctx, t, s)
		oldTitle := task.Title
		require.NoError(t, s.UpdateFields(ctx, task.ID, oldTitle+" renamed", "", "open"))

		found, err := s.FindByTitle(ctx, oldTitle)
		require.NoError(t, err)
		assert.Empty(t, found)

		reuse, err := domain.NewTask(oldTitle, "", "open")
		require.NoError(t, err)
		assert.NoError(t, s.Create(ctx, reuse), "old title should be free after rename")
	})

	t.Run("UpdateFieldsUpsertsMissing", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		id := uuid.New()
		require.NoError(t, s.UpdateFields(ctx, id, "upserted", "d", "open"))

		got, err := s.GetByID(ctx, id)
		require.NoError(t, err)
		want := &domain.Task{ID: id, Title: "upserted", Description: "d", Status: "open"}
		if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
			t.Errorf("upserted task mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("UpdateFieldsTitleConflict", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		a := MustInsertTask(ctx, t, s)
		b := MustInsertTask(ctx, t, s)

		err := s.UpdateFields(ctx, b.ID, a.Title, "", "open")
		assert.True(t, errors.Is(err, store.ErrTaskTitleExists), "got %v", err)

		got, err := s.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.Title, got.Title, "failed update must leave the task unchanged")
	})

	t.Run("DeleteExisting", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		task := MustInsertTask(ctx, t, s)
		require.NoError(t, s.Delete(ctx, task.ID))

		_, err := s.GetByID(ctx, task.ID)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound), "got %v", err)

		found, err := s.FindByTitle(ctx, task.Title)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		s := newStore(t)

		err := s.Delete(context.Background(), uuid.New())
		assert.True(t, errors.Is(err, store.ErrTaskNotFound), "got %v", err)
	})

	t.Run("FindByTitle", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		task := MustInsertTask(ctx, t, s)
		MustInsertTask(ctx, t, s)

		found, err := s.FindByTitle(ctx, task.Title)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, task.ID, found[0].ID)

		none, err := s.FindByTitle(ctx, "no such title")
		require.NoError(t, err)
		assert.NotNil(t, none, "no matches should be an empty slice, not nil")
		assert.Empty(t, none)
	})

	t.Run("Ping", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
