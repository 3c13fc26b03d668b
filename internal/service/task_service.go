package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// Listing defaults applied when the caller does not supply a window.
const (
	DefaultListOffset = 0
	DefaultListLimit  = 100
)

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask stores a new, not yet completed task.
	CreateTask(ctx context.Context, title, description string) (*domain.Task, error)

	// GetTask retrieves a task by its ID. Returns ErrTaskNotFound if absent.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns up to limit tasks in insertion order after skipping
	// offset tasks. Negative values are rejected with a validation error.
	ListTasks(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// UpdateTask applies a partial update. Returns ErrTaskNotFound if absent.
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask permanently removes a task. Returns ErrTaskNotFound if absent.
	DeleteTask(ctx context.Context, id int64) error

	// CountTasks returns the number of stored tasks.
	CountTasks(ctx context.Context) (int64, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	sessions  store.SessionRunner
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	sessions store.SessionRunner,
	taskStore store.TaskStore,
	logger *slog.Logger,
) (TaskService, error) {
	if sessions == nil {
		return nil, domain.NewValidationError("sessions", "cannot be nil", domain.ErrValidation)
	}
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		sessions:  sessions,
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	task := domain.NewTask(title, description)

	err := s.sessions.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task *domain.Task
	err := s.sessions.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		task, err = s.taskStore.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		logFailure(log, "failed to retrieve task", id, err)
		return nil, NewServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if offset < 0 {
		return nil, domain.NewValidationError("skip", "must be greater than or equal to 0", domain.ErrInvalidFormat)
	}
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "must be greater than or equal to 0", domain.ErrInvalidFormat)
	}

	var tasks []*domain.Task
	err := s.sessions.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		tasks, err = s.taskStore.WithTx(tx).List(ctx, offset, limit)
		return err
	})
	if err != nil {
		log.Error("failed to list tasks",
			slog.Int("offset", offset),
			slog.Int("limit", limit),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError("list_tasks", "failed to list tasks", err)
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task *domain.Task
	err := s.sessions.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		task, err = s.taskStore.WithTx(tx).Update(ctx, id, patch)
		return err
	})
	if err != nil {
		logFailure(log, "failed to update task", id, err)
		return nil, NewServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.sessions.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		logFailure(log, "failed to delete task", id, err)
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// CountTasks implements TaskService.CountTasks
func (s *taskServiceImpl) CountTasks(ctx context.Context) (int64, error) {
	var count int64
	err := s.sessions.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		count, err = s.taskStore.WithTx(tx).Count(ctx)
		return err
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("error", redact.Error(err)))
		return 0, NewServiceError("count_tasks", "failed to count tasks", err)
	}
	return count, nil
}

// logFailure logs a missing task at debug level and everything else as an error.
func logFailure(log *slog.Logger, msg string, id int64, err error) {
	if errors.Is(err, store.ErrNotFound) {
		log.Debug("task not found", slog.Int64("task_id", id))
		return
	}
	log.Error(msg,
		slog.Int64("task_id", id),
		slog.String("error", redact.Error(err)))
}
