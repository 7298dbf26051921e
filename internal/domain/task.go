package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskIDLength is the length of a task identifier in its canonical textual form.
const TaskIDLength = 36

// Task is a unit of work tracked by the service. The ID is assigned once at
// creation and never changes; Title, Description and Status are overwritten
// wholesale by updates.
type Task struct {
	ID          uuid.UUID `json:"taskId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// NewTask creates a new Task with a freshly generated random (version 4) ID.
// Returns an error if validation fails.
func NewTask(title, description, status string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("taskId", "cannot be empty", ErrInvalidID)
	}
	if t.Title == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if t.Status == "" {
		return NewValidationError("status", "is required", ErrEmptyStatus)
	}
	return nil
}

// ParseTaskID parses a task identifier taken from a request path.
// The raw value must be exactly TaskIDLength characters and a canonical UUID;
// uuid.Parse alone would also accept braced, URN and unhyphenated forms.
func ParseTaskID(raw string) (uuid.UUID, error) {
	if len(raw) != TaskIDLength {
		return uuid.Nil, NewValidationError("taskId", "must be 36 characters", ErrInvalidID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError("taskId", "has invalid format", ErrInvalidID)
	}
	return id, nil
}

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field wrapping err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
