package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	GetTaskFn    func(ctx context.Context, taskID string) (*domain.Task, error)
	CreateTaskFn func(ctx context.Context, fields service.TaskFields) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, taskID string, fields service.TaskFields) error
	DeleteTaskFn func(ctx context.Context, taskID string) error
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, taskID)
	}
	return nil, nil
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, fields service.TaskFields) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, fields)
	}
	return nil, nil
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(ctx context.Context, taskID string, fields service.TaskFields) error {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, taskID, fields)
	}
	return nil
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, taskID string) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, taskID)
	}
	return nil
}

// newTaskRouter mounts the task routes the same way the server does.
func newTaskRouter(h *TaskHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks/{taskId}", h.GetTask)
	r.Put("/tasks/{taskId}", h.UpdateTask)
	r.Delete("/tasks/{taskId}", h.DeleteTask)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded), "body: %s", rr.Body.String())
	return rr, decoded
}

func TestNewTaskHandler_NilServicePanics(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, StandardErrorMapping, nil) })
}

func TestTaskHandler_CreateTask(t *testing.T) {
	fixedID := uuid.MustParse("22222222-2222-4222-8222-222222222222")

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   map[string]string
	}{
		{
			name: "success",
			body: `{"title":"Buy milk","description":"2%","status":"open"}`,
			setupMock: func(ms *MockTaskService) {
				ms.CreateTaskFn = func(_ context.Context, f service.TaskFields) (*domain.Task, error) {
					return &domain.Task{ID: fixedID, Title: f.Title, Description: f.Description, Status: f.Status}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   map[string]string{"message": "Task " + fixedID.String() + " added successfully"},
		},
		{
			name:           "missing_title",
			body:           `{"description":"2%","status":"open"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]string{"error": "Missing required attributes."},
		},
		{
			name:           "missing_status",
			body:           `{"title":"Buy milk"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]string{"error": "Missing required attributes."},
		},
		{
			name:           "malformed_json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]string{"error": "Invalid request format"},
		},
		{
			name: "duplicate",
			body: `{"title":"Buy milk","status":"open"}`,
			setupMock: func(ms *MockTaskService) {
				ms.CreateTaskFn = func(context.Context, service.TaskFields) (*domain.Task, error) {
					return nil, service.ErrDuplicateTask
				}
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   map[string]string{"error": "Task already exists."},
		},
		{
			name: "store_failure",
			body: `{"title":"Buy milk","status":"open"}`,
			setupMock: func(ms *MockTaskService) {
				ms.CreateTaskFn = func(context.Context, service.TaskFields) (*domain.Task, error) {
					return nil, service.NewTaskServiceError("create_task", "failed to save task",
						errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]string{"error": "An unexpected error occurred"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := &MockTaskService{
				CreateTaskFn: func(context.Context, service.TaskFields) (*domain.Task, error) {
					t.Fatal("service should not be called")
					return nil, nil
				},
			}
			if tt.setupMock != nil {
				tt.setupMock(ms)
			}
			router := newTaskRouter(NewTaskHandler(ms, StandardErrorMapping, nil))

			rr, body := doRequest(t, router, http.MethodPost, "/tasks", tt.body)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestTaskHandler_DescriptionIsOptional(t *testing.T) {
	var got service.TaskFields
	ms := &MockTaskService{
		CreateTaskFn: func(_ context.Context, f service.TaskFields) (*domain.Task, error) {
			got = f
			return &domain.Task{ID: uuid.New()}, nil
		},
	}
	router := newTaskRouter(NewTaskHandler(ms, StandardErrorMapping, nil))

	rr, _ := doRequest(t, router, http.MethodPost, "/tasks", `{"title":"Buy milk","status":"open"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, service.TaskFields{Title: "Buy milk", Status: "open"}, got)
}

func TestTaskHandler_PassesRawTaskID(t *testing.T) {
	var seen []string
	record := func(_ context.Context, id string) error {
		seen = append(seen, id)
		return service.ErrInvalidIdentifier
	}
	ms := &MockTaskService{
		GetTaskFn:    func(ctx context.Context, id string) (*domain.Task, error) { return nil, record(ctx, id) },
		DeleteTaskFn: record,
	}
	router := newTaskRouter(NewTaskHandler(ms, StandardErrorMapping, nil))

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rr, resp := doRequest(t, router, method, "/tasks/abc", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, method)
		assert.Equal(t, "The ID has been provided incorrectly.", resp["error"], method)
	}
	assert.Equal(t, []string{"abc", "abc"}, seen)
}

// TestTaskHandler_UpdateTask_InvalidIDBeforeBody verifies a bad task ID is
// reported as such whatever the body holds, and the service is not called.
func TestTaskHandler_UpdateTask_InvalidIDBeforeBody(t *testing.T) {
	bodies := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "missing status", body: `{"title":"a"}`},
		{name: "malformed", body: `{"title"`},
		{name: "complete", body: `{"title":"t","status":"s"}`},
	}

	for _, tt := range bodies {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			ms := &MockTaskService{
				UpdateTaskFn: func(context.Context, string, service.TaskFields) error {
					called = true
					return nil
				},
			}
			router := newTaskRouter(NewTaskHandler(ms, StandardErrorMapping, nil))

			rr, resp := doRequest(t, router, http.MethodPut, "/tasks/short", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "The ID has been provided incorrectly.", resp["error"])
			assert.False(t, called, "service must not run for an invalid ID")
		})
	}
}

// TestTaskHandler_Lifecycle drives create, get, update, get, delete, get
// against a real in-memory store under both error mappings.
func TestTaskHandler_Lifecycle(t *testing.T) {
	tests := []struct {
		name            string
		mapping         ErrorMapping
		missingStatus   int
		duplicateStatus int
	}{
		{name: "standard", mapping: StandardErrorMapping, missingStatus: http.StatusNotFound, duplicateStatus: http.StatusConflict},
		{name: "legacy", mapping: LegacyErrorMapping, missingStatus: http.StatusBadRequest, duplicateStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := service.NewTaskService(memory.NewTaskStore(nil), service.TaskServiceOptions{}, nil)
			require.NoError(t, err)
			router := newTaskRouter(NewTaskHandler(svc, tt.mapping, nil))

			rr, body := doRequest(t, router, http.MethodPost, "/tasks",
				`{"title":"Buy milk","description":"2%","status":"open"}`)
			require.Equal(t, http.StatusCreated, rr.Code)
			msg := body["message"]
			require.True(t, strings.HasPrefix(msg, "Task ") && strings.HasSuffix(msg, " added successfully"), msg)
			id := strings.TrimSuffix(strings.TrimPrefix(msg, "Task "), " added successfully")
			_, err = uuid.Parse(id)
			require.NoError(t, err)
			require.Len(t, id, domain.TaskIDLength)

			rr, body = doRequest(t, router, http.MethodGet, "/tasks/"+id, "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, map[string]string{
				"taskId":      id,
				"title":       "Buy milk",
				"description": "2%",
				"status":      "open",
			}, body)

			rr, _ = doRequest(t, router, http.MethodPost, "/tasks", `{"title":"Buy milk","status":"open"}`)
			assert.Equal(t, tt.duplicateStatus, rr.Code)

			rr, body = doRequest(t, router, http.MethodPut, "/tasks/"+id,
				`{"title":"Buy milk","description":"whole","status":"done"}`)
			assert.Equal(t, http.StatusCreated, rr.Code)
			assert.Equal(t, "Task "+id+" updated successfully", body["message"])

			rr, body = doRequest(t, router, http.MethodGet, "/tasks/"+id, "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "whole", body["description"])
			assert.Equal(t, "done", body["status"])
			assert.Equal(t, id, body["taskId"])

			rr, body = doRequest(t, router, http.MethodDelete, "/tasks/"+id, "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "Task "+id+" deleted successfully", body["message"])

			rr, body = doRequest(t, router, http.MethodGet, "/tasks/"+id, "")
			assert.Equal(t, tt.missingStatus, rr.Code)
			assert.Equal(t, "Task not found.", body["error"])

			rr, _ = doRequest(t, router, http.MethodDelete, "/tasks/"+id, "")
			assert.Equal(t, tt.missingStatus, rr.Code)

			rr, body = doRequest(t, router, http.MethodGet, "/tasks/not-a-valid-id", "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "The ID has been provided incorrectly.", body["error"])
		})
	}
}
