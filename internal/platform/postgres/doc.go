// Package postgres provides the PostgreSQL implementation of the task store,
// the bounded connection pool that hands out request-scoped sessions, and
// creation of the tasks table on startup.
//
// All queries go through the pgx stdlib driver registered as "pgx" so the
// package works in terms of database/sql and can be exercised with sqlmock.
package postgres
