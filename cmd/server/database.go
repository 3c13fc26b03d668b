package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/redact"
)

// setupAppDatabase opens the bounded connection pool and, outside test mode,
// creates the tasks table if it is missing.
//
// An unreachable database does not stop the server: /health keeps answering
// and task endpoints fail until the database comes back. A failed schema
// creation is logged the same way.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*postgres.Pool, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pool := postgres.NewPool(db, cfg.Database, logger)
	logger.Info("database pool configured",
		slog.String("url", redact.DatabaseURL(cfg.Database.URL)),
		slog.Int("pool_size", cfg.Database.PoolSize),
		slog.Int("max_overflow", cfg.Database.MaxOverflow),
		slog.Duration("pool_timeout", cfg.Database.PoolTimeout),
		slog.Duration("conn_max_lifetime", cfg.Database.ConnMaxLifetime))

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database not reachable at startup",
			slog.String("error", redact.Error(err)))
	}

	if cfg.Server.IsTest() {
		logger.Info("test environment, skipping schema creation")
		return pool, nil
	}

	if err := postgres.EnsureSchema(ctx, pool.DB(), logger); err != nil {
		logger.Error("error creating database tables",
			slog.String("error", redact.Error(err)))
	} else {
		logger.Info("database tables created successfully")
	}

	return pool, nil
}
