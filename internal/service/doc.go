// Package service contains the task use cases: get, create, update and
// delete. Each operation is a function of the injected store.TaskStore and
// the request data; the service holds no other state.
//
// Expected failures are reported as the sentinel errors in errors.go so
// the API layer can map them to status codes with errors.Is. Unexpected
// store failures are wrapped in *TaskServiceError.
package service
