// Package sqlite provides a SQLite implementation of store.TaskStore using
// the pure-Go modernc.org/sqlite driver, for single-file deployments that
// do not run a PostgreSQL server.
package sqlite
