package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// Pool is a bounded set of connections to PostgreSQL that hands out
// request-scoped sessions.
type Pool struct {
	db              *sql.DB
	checkoutTimeout time.Duration
	logger          *slog.Logger
}

var _ store.SessionRunner = (*Pool)(nil)

// Open connects to the database described by cfg, applies the pool bounds
// and verifies the connection with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Pool, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pool := NewPool(db, cfg, log)
	if err := pool.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	pool.logger.Info("database connection established",
		slog.String("url", redact.DatabaseURL(cfg.URL)),
		slog.Int("pool_size", cfg.PoolSize),
		slog.Int("max_overflow", cfg.MaxOverflow),
		slog.Duration("pool_timeout", cfg.PoolTimeout),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime))

	return pool, nil
}

// NewPool wraps an already opened handle and applies the bounds from cfg.
func NewPool(db *sql.DB, cfg config.DatabaseConfig, log *slog.Logger) *Pool {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	ConfigurePool(db, cfg)

	return &Pool{
		db:              db,
		checkoutTimeout: cfg.PoolTimeout,
		logger:          log.With(slog.String("component", "db_pool")),
	}
}

// ConfigurePool applies the pool size, overflow and recycle settings.
// PoolSize connections are kept idle; overflow connections are closed as
// soon as they are returned.
func ConfigurePool(db *sql.DB, cfg config.DatabaseConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns())
	db.SetMaxIdleConns(cfg.PoolSize)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// RunInSession checks a connection out of the pool, runs fn inside one
// transaction on it and releases the connection on every exit path.
// Checkout waits at most the configured pool timeout and then fails with
// store.ErrPoolTimeout.
func (p *Pool) RunInSession(ctx context.Context, fn store.TxFn) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	conn, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error("failed to release database session",
				slog.String("error", redact.Error(err)))
		}
	}()

	return store.RunInTransaction(ctx, conn, fn)
}

func (p *Pool) acquire(ctx context.Context) (*sql.Conn, error) {
	checkoutCtx := ctx
	if p.checkoutTimeout > 0 {
		var cancel context.CancelFunc
		checkoutCtx, cancel = context.WithTimeout(ctx, p.checkoutTimeout)
		defer cancel()
	}

	conn, err := p.db.Conn(checkoutCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			stats := p.db.Stats()
			p.logger.Warn("database pool exhausted",
				slog.Duration("waited", p.checkoutTimeout),
				slog.Int("in_use", stats.InUse),
				slog.Int("max_open", stats.MaxOpenConnections))
			return nil, fmt.Errorf("%w after %s", store.ErrPoolTimeout, p.checkoutTimeout)
		}
		return nil, fmt.Errorf("failed to acquire database session: %w", err)
	}
	return conn, nil
}

// DB returns the underlying handle, for schema setup.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Stats returns the pool statistics.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// Ping verifies that a connection can be established within the pool
// timeout.
func (p *Pool) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, p.checkoutTimeout)
	defer cancel()
	if err := p.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes every connection in the pool.
func (p *Pool) Close() error {
	stats := p.db.Stats()
	p.logger.Info("closing database pool",
		slog.Int("open_connections", stats.OpenConnections),
		slog.Int("in_use", stats.InUse),
		slog.Int64("wait_count", stats.WaitCount),
		slog.Duration("wait_duration", stats.WaitDuration),
		slog.Int64("max_lifetime_closed", stats.MaxLifetimeClosed))
	return p.db.Close()
}
