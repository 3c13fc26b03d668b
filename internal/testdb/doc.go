// Package testdb provides utilities for PostgreSQL integration tests.
//
// Tests that need a real database call GetTestDBWithT, which skips the test
// unless DATABASE_URL is set, creates the tasks table and closes the handle
// on cleanup. WithTx runs a test body inside a transaction that is always
// rolled back so tests leave no rows behind.
package testdb
