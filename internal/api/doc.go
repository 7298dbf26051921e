// Package api exposes the task service over HTTP. Handlers decode and
// validate JSON bodies, call service.TaskService and translate its error
// kinds to status codes through an ErrorMapping.
package api
