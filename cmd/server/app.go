package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// pool is nil in router tests that run without a database.
	pool *postgres.Pool

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger, pool *postgres.Pool) (*application, error) {
	if pool == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}

	taskStore := postgres.NewPostgresTaskStore(pool.DB(), logger)
	return newApplicationWithStore(cfg, logger, pool, pool, taskStore)
}

// newApplicationWithStore wires the service and handlers around an arbitrary
// session runner and task store.
func newApplicationWithStore(
	cfg *config.Config,
	logger *slog.Logger,
	pool *postgres.Pool,
	sessions store.SessionRunner,
	taskStore store.TaskStore,
) (*application, error) {
	taskService, err := service.NewTaskService(sessions, taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized successfully")
	return &application{
		config:      cfg,
		logger:      logger,
		pool:        pool,
		taskStore:   taskStore,
		taskService: taskService,
	}, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.pool != nil {
		if err := app.pool.Close(); err != nil {
			app.logger.Error("error closing database pool", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
