package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "ErrTaskNotFound",
			err:      ErrTaskNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrTaskNotFound",
			err:      fmt.Errorf("failed to get task: %w", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "duplicate is not not-found",
			err:      ErrTaskTitleExists,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: true,
		},
		{
			name:     "ErrTaskTitleExists",
			err:      ErrTaskTitleExists,
			expected: true,
		},
		{
			name:     "wrapped in StoreError",
			err:      NewStoreError("task", "create", "title taken", ErrTaskTitleExists),
			expected: true,
		},
		{
			name:     "not found is not duplicate",
			err:      ErrTaskNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateError(tt.err); got != tt.expected {
				t.Errorf("IsDuplicateError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")

	withCause := NewStoreError("task", "get", "query failed", cause)
	want := "get operation on task failed: query failed: connection refused"
	if withCause.Error() != want {
		t.Errorf("Error() = %q, want %q", withCause.Error(), want)
	}
	if !errors.Is(withCause, cause) {
		t.Error("expected StoreError to unwrap to its cause")
	}

	noCause := NewStoreError("task", "delete", "nothing to delete", nil)
	want = "delete operation on task failed: nothing to delete"
	if noCause.Error() != want {
		t.Errorf("Error() = %q, want %q", noCause.Error(), want)
	}
	if noCause.Unwrap() != nil {
		t.Error("expected nil Unwrap for StoreError without cause")
	}
}
