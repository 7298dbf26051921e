package api

import "github.com/phrazzld/tasks-api/internal/domain"

// TaskRequest is the body of POST /tasks and PUT /tasks/{taskId}.
// Description is optional and defaults to the empty string.
type TaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"required"`
}

// TaskResponse is the body of a successful GET /tasks/{taskId}.
type TaskResponse struct {
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// MessageResponse is the body of successful create, update and delete calls.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
	}
}
