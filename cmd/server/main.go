// Package main implements the entry point for the task API server, a small
// CRUD service for to-do items backed by PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log"
)

// main is the entry point for the task-api server.
// It loads configuration, sets up logging, connects the database pool,
// injects dependencies and serves HTTP until SIGINT or SIGTERM.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("task-api: %v", err)
	}
}

// run wires the application and blocks until the server has shut down.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	pool, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, pool)
	if err != nil {
		_ = pool.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
