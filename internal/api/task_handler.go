package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler handles the /tasks HTTP endpoints.
type TaskHandler struct {
	taskService  service.TaskService
	errorMapping ErrorMapping
	logger       *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, slog.Default() is used.
func NewTaskHandler(taskService service.TaskService, mapping ErrorMapping, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: constructor invariant, handlers cannot serve without a service
		panic("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService:  taskService,
		errorMapping: mapping,
		logger:       logger.With(slog.String("component", "task_handler")),
	}
}

// GetTask handles GET /tasks/{taskId}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTask(r.Context(), getTaskIDParam(r))
	if err != nil {
		HandleAPIError(w, r, err, h.errorMapping)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, err := decodeTaskRequest(r)
	if err != nil {
		log.Debug("rejected create request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, h.errorMapping)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.fields())
	if err != nil {
		HandleAPIError(w, r, err, h.errorMapping)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("Task %s added successfully", task.ID),
	})
}

// UpdateTask handles PUT /tasks/{taskId}. The ID is checked before the body.
// Success answers 201 Created, matching create.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, err := requireTaskIDParam(r)
	if err != nil {
		HandleAPIError(w, r, err, h.errorMapping)
		return
	}

	req, err := decodeTaskRequest(r)
	if err != nil {
		log.Debug("rejected update request",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, h.errorMapping)
		return
	}

	if err := h.taskService.UpdateTask(r.Context(), taskID, req.fields()); err != nil {
		HandleAPIError(w, r, err, h.errorMapping)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("Task %s updated successfully", taskID),
	})
}

// DeleteTask handles DELETE /tasks/{taskId}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := getTaskIDParam(r)

	if err := h.taskService.DeleteTask(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, h.errorMapping)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Task %s deleted successfully", taskID),
	})
}
