// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It works against any store.DBTX, normally a *sql.DB opened with the pgx
// stdlib driver, and maps pgconn errors onto the store error sentinels.
package postgres
