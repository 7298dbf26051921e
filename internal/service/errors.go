package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/store"
)

// Error kinds returned by TaskService. Callers check them with errors.Is.
var (
	// ErrInvalidIdentifier indicates a task ID that is not a 36-character UUID.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidIdentifier = errors.New("invalid task identifier")

	// ErrMissingField indicates a required request field was absent or empty.
	// API layer should map this to HTTP 400 Bad Request.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidRequest indicates a request body that could not be decoded.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDuplicateTask indicates another task already uses the title.
	// API layer should map this to HTTP 409 Conflict.
	ErrDuplicateTask = errors.New("task already exists")

	// ErrTaskNotFound indicates that the task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "delete_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Store not-found and duplicate errors are translated to the service
// sentinels and returned without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, ErrDuplicateTask), errors.Is(err, store.ErrTaskTitleExists):
		return ErrDuplicateTask
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// missingFieldError reports a required field that was absent or empty.
func missingFieldError(operation, field string) error {
	return &TaskServiceError{
		Operation: operation,
		Message:   field + " is required",
		Err:       ErrMissingField,
	}
}
