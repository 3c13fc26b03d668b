package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoolConfig(size, overflow int, timeout time.Duration) config.DatabaseConfig {
	return config.DatabaseConfig{
		URL:             config.DefaultDatabaseURL,
		PoolSize:        size,
		MaxOverflow:     overflow,
		PoolTimeout:     timeout,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

func TestConfigurePool(t *testing.T) {
	t.Parallel()

	// sql.Open never dials, so no server is needed
	db, err := sql.Open("pgx", config.DefaultDatabaseURL)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	postgres.ConfigurePool(db, testPoolConfig(5, 10, 30*time.Second))

	assert.Equal(t, 15, db.Stats().MaxOpenConnections)
}

func TestNewPool_NilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		postgres.NewPool(nil, testPoolConfig(1, 0, time.Second), nil)
	})
}

func TestPool_RunInSession(t *testing.T) {
	t.Parallel()

	t.Run("commits_and_releases", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		pool := postgres.NewPool(db, testPoolConfig(1, 0, time.Second), nil)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err = pool.RunInSession(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
			assert.Equal(t, 1, pool.Stats().InUse)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 0, pool.Stats().InUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls_back_and_releases_on_error", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		pool := postgres.NewPool(db, testPoolConfig(1, 0, time.Second), nil)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err = pool.RunInSession(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
			return store.ErrTaskNotFound
		})

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Equal(t, 0, pool.Stats().InUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("releases_on_panic", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		pool := postgres.NewPool(db, testPoolConfig(1, 0, time.Second), nil)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = pool.RunInSession(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
				panic("handler bug")
			})
		})
		assert.Equal(t, 0, pool.Stats().InUse)
	})
}

func TestPool_RunInSession_Exhausted(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	pool := postgres.NewPool(db, testPoolConfig(1, 0, 50*time.Millisecond), nil)

	// Hold the only connection.
	held, err := db.Conn(context.Background())
	require.NoError(t, err)

	err = pool.RunInSession(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		t.Fatal("session must not start while the pool is exhausted")
		return nil
	})
	assert.ErrorIs(t, err, store.ErrPoolTimeout)

	require.NoError(t, held.Close())

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = pool.RunInSession(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		return nil
	})
	assert.NoError(t, err, "pool recovers once the connection is returned")
}

func TestPool_RunInSession_CallerCancelled(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	pool := postgres.NewPool(db, testPoolConfig(1, 0, time.Second), nil)
	held, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer func() { _ = held.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = pool.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return nil
	})

	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrPoolTimeout), "caller cancellation is not a pool timeout")
}

func TestPool_ConcurrentSessionsNeverExceedBound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	mock.MatchExpectationsInOrder(false)

	const workers = 6
	for i := 0; i < workers; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	pool := postgres.NewPool(db, testPoolConfig(1, 1, 5*time.Second), nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		maxSeen int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pool.RunInSession(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
				mu.Lock()
				if inUse := pool.Stats().InUse; inUse > maxSeen {
					maxSeen = inUse
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, maxSeen, 2)
	assert.Equal(t, 0, pool.Stats().InUse)
}
