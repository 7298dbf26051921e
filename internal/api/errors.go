package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/service"
)

// ErrorMapping selects how service errors are translated to HTTP status codes.
type ErrorMapping int

const (
	// StandardErrorMapping gives each error kind its own status code.
	StandardErrorMapping ErrorMapping = iota

	// LegacyErrorMapping answers every failure with 400 Bad Request, for
	// clients written against the service's original behaviour.
	LegacyErrorMapping
)

// StatusCode returns the HTTP status code for err under the mapping.
func (m ErrorMapping) StatusCode(err error) int {
	if m == LegacyErrorMapping {
		return http.StatusBadRequest
	}
	return MapErrorToStatusCode(err)
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, service.ErrInvalidIdentifier),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateTask):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, service.ErrInvalidIdentifier):
		return "The ID has been provided incorrectly."
	case errors.Is(err, service.ErrMissingField):
		return "Missing required attributes."
	case errors.Is(err, service.ErrInvalidRequest):
		return "Invalid request format"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found."
	case errors.Is(err, service.ErrDuplicateTask):
		return "Task already exists."
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err: the status code from
// mapping, the sanitized message in the body and the redacted error in the log.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, mapping ErrorMapping) {
	shared.RespondWithErrorAndLog(w, r, mapping.StatusCode(err), GetSafeErrorMessage(err), err)
}
