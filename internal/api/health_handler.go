package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service"
)

// ServiceName identifies this service in health responses.
const ServiceName = "task-api"

// HealthHandler serves the liveness and metrics endpoints.
type HealthHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(taskService service.TaskService, logger *slog.Logger) *HealthHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for HealthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "health_handler")),
	}
}

// Health handles GET /health. It never touches the database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
	})
}

// Metrics handles GET /metrics. It always answers 200; a failed count is
// reported as service_status "error" with a zero total.
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	response := MetricsResponse{ServiceStatus: ServiceStatusRunning}

	count, err := h.taskService.CountTasks(r.Context())
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to count tasks for metrics",
			slog.String("error", redact.Error(err)))
		response.ServiceStatus = ServiceStatusError
	} else {
		response.TotalTasks = count
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
