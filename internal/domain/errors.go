package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidID is returned when a task identifier is not a 36-character UUID.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyTitle is returned when a task has no title.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrEmptyStatus is returned when a task has no status.
	ErrEmptyStatus = errors.New("task status cannot be empty")
)
