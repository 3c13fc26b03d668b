package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TASKAPI_TEST_DB_URL", "")
	assert.Equal(t, "", GetTestDatabaseURL())
	assert.False(t, IsIntegrationTestEnvironment())

	t.Setenv("TASKAPI_TEST_DB_URL", "postgresql://fallback/db")
	assert.Equal(t, "postgresql://fallback/db", GetTestDatabaseURL())

	t.Setenv("DATABASE_URL", "postgresql://primary/db")
	assert.Equal(t, "postgresql://primary/db", GetTestDatabaseURL())
	assert.True(t, IsIntegrationTestEnvironment())
}

func TestTestDatabaseConfig(t *testing.T) {
	t.Parallel()

	cfg := TestDatabaseConfig("postgresql://u:p@localhost:5432/db")

	assert.Equal(t, "postgresql://u:p@localhost:5432/db", cfg.URL)
	assert.Equal(t, 5, cfg.MaxOpenConns())
	assert.Equal(t, TestTimeout, cfg.PoolTimeout)
}
