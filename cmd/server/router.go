package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.SecurityHeaders)
	r.Use(apiMiddleware.CORS(app.config.Server.CORSAllowedOrigins...))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	healthHandler := api.NewHealthHandler(app.taskService, app.logger)

	r.Get("/health", healthHandler.Health)
	r.Get("/metrics", healthHandler.Metrics)

	// Collection routes answer on both /tasks and /tasks/.
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{task_id}", taskHandler.GetTask)
		r.Put("/{task_id}", taskHandler.UpdateTask)
		r.Delete("/{task_id}", taskHandler.DeleteTask)
	})

	return r
}
