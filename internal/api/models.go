package api

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest is the JSON body accepted by POST /tasks/.
// Title is a pointer so a missing title can be told apart from an empty one.
type CreateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest is the JSON body accepted by PUT /tasks/{task_id}.
// A missing key and an explicit null both leave the field unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ListTasksQuery is the pagination window for GET /tasks/.
type ListTasksQuery struct {
	Skip  int `json:"skip"  validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0"`
}

// TaskResponse is the wire shape of a task.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// MetricsResponse is returned by GET /metrics.
type MetricsResponse struct {
	TotalTasks    int64  `json:"total_tasks"`
	ServiceStatus string `json:"service_status"`
}

// Values for MetricsResponse.ServiceStatus.
const (
	ServiceStatusRunning = "running"
	ServiceStatusError   = "error"
)

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	response := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, taskToResponse(task))
	}
	return response
}
