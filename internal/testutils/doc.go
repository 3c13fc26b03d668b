// Package testutils provides shared helpers for tests across the codebase.
//
// Helper functions follow these naming conventions:
//   - Create*: build entities in memory
//   - MustInsert*: insert entities through a store, failing the test on error
//   - Capture*: collect side effects such as log records for assertions
package testutils
