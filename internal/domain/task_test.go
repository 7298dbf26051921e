package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Buy milk", "2%", "open")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if got := len(task.ID.String()); got != TaskIDLength {
		t.Errorf("Expected ID of length %d, got %d", TaskIDLength, got)
	}
	if task.ID.Version() != 4 {
		t.Errorf("Expected version 4 UUID, got version %d", task.ID.Version())
	}
	if task.Title != "Buy milk" || task.Description != "2%" || task.Status != "open" {
		t.Errorf("Unexpected task fields: %+v", task)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Description is optional
	if _, err := NewTask("No description", "", "open"); err != nil {
		t.Errorf("Expected empty description to be accepted, got %v", err)
	}

	_, err = NewTask("", "desc", "open")
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTitle, err)
	}

	_, err = NewTask("title", "desc", "")
	if !errors.Is(err, ErrEmptyStatus) {
		t.Errorf("Expected error %v, got %v", ErrEmptyStatus, err)
	}
}

func TestTaskValidate_NilID(t *testing.T) {
	t.Parallel()

	task := Task{Title: "t", Status: "open"}
	err := task.Validate()
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("Expected error %v, got %v", ErrInvalidID, err)
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if vErr.Field != "taskId" {
		t.Errorf("Expected field taskId, got %s", vErr.Field)
	}
}

func TestParseTaskID(t *testing.T) {
	t.Parallel()

	valid := uuid.New()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "canonical", raw: valid.String()},
		{name: "uppercase", raw: strings.ToUpper(valid.String())},
		{name: "empty", raw: "", wantErr: true},
		{name: "too_short", raw: "1234", wantErr: true},
		{name: "too_long", raw: valid.String() + "0", wantErr: true},
		{name: "braced", raw: "{" + valid.String() + "}", wantErr: true},
		{name: "unhyphenated", raw: strings.ReplaceAll(valid.String(), "-", ""), wantErr: true},
		{name: "right_length_not_uuid", raw: strings.Repeat("x", TaskIDLength), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseTaskID(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Fatalf("Expected ErrInvalidID, got %v", err)
				}
				if id != uuid.Nil {
					t.Errorf("Expected nil UUID on error, got %s", id)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if id != valid {
				t.Errorf("Expected %s, got %s", valid, id)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "is required", ErrEmptyTitle)
	if err.Error() != "title is required" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrEmptyTitle) {
		t.Error("Expected ValidationError to unwrap to ErrEmptyTitle")
	}
}
