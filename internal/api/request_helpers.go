package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskIDParam is the chi URL parameter holding the task identifier.
const TaskIDParam = "taskId"

// getTaskIDParam returns the raw task identifier from the URL path.
// The service validates it.
func getTaskIDParam(r *http.Request) string {
	return chi.URLParam(r, TaskIDParam)
}

// requireTaskIDParam returns the URL task identifier, or an error wrapping
// service.ErrInvalidIdentifier when it is not a 36-character UUID. Handlers
// that read a body call it first so a bad ID wins over a bad body.
func requireTaskIDParam(r *http.Request) (string, error) {
	taskID := getTaskIDParam(r)
	if _, err := domain.ParseTaskID(taskID); err != nil {
		return taskID, fmt.Errorf("%w: %v", service.ErrInvalidIdentifier, err)
	}
	return taskID, nil
}

// decodeTaskRequest decodes and validates a TaskRequest body. Malformed JSON
// is reported as service.ErrInvalidRequest and a failed validate tag as
// service.ErrMissingField, so the caller can pass the error to HandleAPIError.
func decodeTaskRequest(r *http.Request) (TaskRequest, error) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return TaskRequest{}, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
	}
	if err := shared.ValidateRequest(&req); err != nil {
		return TaskRequest{}, fmt.Errorf("%w: %v", service.ErrMissingField, err)
	}
	return req, nil
}

func (req TaskRequest) fields() service.TaskFields {
	return service.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
}
