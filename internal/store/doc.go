// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so the task service works unchanged over
// PostgreSQL, SQLite or the in-memory store.
package store
