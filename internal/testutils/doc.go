// Package testutils provides standardized helpers for tests across the
// codebase: task fixtures and a behavioural suite every store.TaskStore
// implementation runs against itself.
//
// Helper functions follow these naming conventions:
//   - Create*: Create entities in memory
//   - MustInsert*: Insert entities through a store, failing the test on error
//   - Run*Suite: Run a shared table of subtests against an implementation
package testutils
