package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// Listing defaults for GET /tasks/.
const (
	defaultSkip  = service.DefaultListOffset
	defaultLimit = service.DefaultListLimit
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks/ requests.
// The title is required and may be empty; the description defaults to "".
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if shared.IsJSONRequest(r) {
		if err := shared.DecodeJSON(r, &req); err != nil {
			log.Debug("invalid JSON body", slog.String("error", err.Error()))
			HandleAPIError(w, r, domain.NewValidationError("body", "must be valid JSON", domain.ErrInvalidFormat), "")
			return
		}
	} else {
		query := r.URL.Query()
		req.Title, _ = queryString(query, "title")
		req.Description, _ = queryString(query, "description")
	}

	if req.Title == nil {
		HandleAPIError(w, r, domain.NewValidationError("title", "field required", nil), "")
		return
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	task, err := h.taskService.CreateTask(r.Context(), *req.Title, description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /tasks/ requests.
// It returns at most limit tasks after skipping skip, in creation order.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	skip, err := queryInt(query, "skip", defaultSkip)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, err := queryInt(query, "limit", defaultLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	window := ListTasksQuery{Skip: skip, Limit: limit}
	if err := shared.ValidateRequest(window); err != nil {
		HandleAPIError(w, r, SanitizeValidationError(err), "")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), window.Skip, window.Limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /tasks/{task_id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, taskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{task_id} requests.
// Only the supplied fields change; omitted fields keep their stored values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, taskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if shared.IsJSONRequest(r) {
		if err := shared.DecodeJSON(r, &req); err != nil {
			log.Debug("invalid JSON body", slog.String("error", err.Error()))
			HandleAPIError(w, r, domain.NewValidationError("body", "must be valid JSON", domain.ErrInvalidFormat), "")
			return
		}
	} else {
		query := r.URL.Query()
		req.Title, _ = queryString(query, "title")
		req.Description, _ = queryString(query, "description")
		if req.Completed, err = queryBool(query, "completed"); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{task_id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, taskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}
