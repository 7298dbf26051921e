// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files, command-line flags).
// It provides type-safe access to application settings needed by different
// components while keeping configuration details separate from business logic.
//
// Environment variables use the TASKS_ prefix with dots replaced by
// underscores, e.g. TASKS_STORE_URL overrides store.url.
package config
