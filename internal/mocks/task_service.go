package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// MockTaskService implements service.TaskService for handler tests.
type MockTaskService struct {
	CreateTaskFn func(ctx context.Context, title, description string) (*domain.Task, error)
	GetTaskFn    func(ctx context.Context, id int64) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context, offset, limit int) ([]*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id int64) error
	CountTasksFn func(ctx context.Context) (int64, error)
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements the TaskService interface
func (m *MockTaskService) CreateTask(ctx context.Context, title, description string) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, description)
	}
	return domain.NewTask(title, description), nil
}

// GetTask implements the TaskService interface
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, service.ErrTaskNotFound
}

// ListTasks implements the TaskService interface
func (m *MockTaskService) ListTasks(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, offset, limit)
	}
	return []*domain.Task{}, nil
}

// UpdateTask implements the TaskService interface
func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return nil, service.ErrTaskNotFound
}

// DeleteTask implements the TaskService interface
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return service.ErrTaskNotFound
}

// CountTasks implements the TaskService interface
func (m *MockTaskService) CountTasks(ctx context.Context) (int64, error) {
	if m.CountTasksFn != nil {
		return m.CountTasksFn(ctx)
	}
	return 0, nil
}
