package testdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// testDatabaseURLEnv names the variables checked for a test database, in order.
var testDatabaseURLEnv = []string{"DATABASE_URL", "TASKAPI_TEST_DB_URL"}

// GetTestDatabaseURL returns the first non-empty test database URL.
func GetTestDatabaseURL() string {
	for _, key := range testDatabaseURLEnv {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// TestDatabaseConfig returns pool settings suited to tests against url.
func TestDatabaseConfig(url string) config.DatabaseConfig {
	return config.DatabaseConfig{
		URL:             url,
		PoolSize:        2,
		MaxOverflow:     3,
		PoolTimeout:     TestTimeout,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// GetTestPoolWithT opens a bounded pool against the test database and
// ensures the tasks table exists. The test is skipped when no database is
// configured.
func GetTestPoolWithT(t *testing.T) *postgres.Pool {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	pool, err := postgres.Open(ctx, TestDatabaseConfig(dbURL), slog.Default())
	require.NoError(t, err, "failed to connect to test database")

	require.NoError(t, postgres.EnsureSchema(ctx, pool.DB(), slog.Default()),
		"failed to create tasks table")

	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Logf("Warning: failed to close test pool: %v", err)
		}
	})

	return pool
}

// GetTestDBWithT is GetTestPoolWithT for tests that only need the handle.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()
	return GetTestPoolWithT(t).DB()
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
