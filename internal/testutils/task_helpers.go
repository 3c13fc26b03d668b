package testutils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/require"
)

// TaskOption customizes a task built by CreateTestTask.
type TaskOption func(*domain.Task)

// WithTaskTitle sets the task title.
func WithTaskTitle(title string) TaskOption {
	return func(t *domain.Task) { t.Title = title }
}

// WithTaskDescription sets the task description.
func WithTaskDescription(description string) TaskOption {
	return func(t *domain.Task) { t.Description = description }
}

// WithTaskCompleted sets the completed flag.
func WithTaskCompleted(completed bool) TaskOption {
	return func(t *domain.Task) { t.Completed = completed }
}

// CreateTestTask creates a new unsaved task with a unique title.
func CreateTestTask(opts ...TaskOption) *domain.Task {
	task := domain.NewTask("Test task "+uuid.NewString()[:8], "")
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// MustInsertTask inserts a task through s and returns it with its
// store-assigned fields populated.
func MustInsertTask(ctx context.Context, t *testing.T, s store.TaskStore, opts ...TaskOption) *domain.Task {
	t.Helper()

	task := CreateTestTask(opts...)
	require.NoError(t, s.Create(ctx, task), "Failed to insert test task")
	require.Positive(t, task.ID, "inserted task must have an ID")
	return task
}

// MustInsertTaskTx inserts a task using a PostgreSQL store bound to db.
func MustInsertTaskTx(ctx context.Context, t *testing.T, db store.DBTX, opts ...TaskOption) *domain.Task {
	t.Helper()
	return MustInsertTask(ctx, t, postgres.NewPostgresTaskStore(db, nil), opts...)
}

// CountTasks returns the number of stored tasks, failing the test on error.
func CountTasks(ctx context.Context, t *testing.T, s store.TaskStore) int64 {
	t.Helper()

	n, err := s.Count(ctx)
	require.NoError(t, err, "Failed to count tasks")
	return n
}
