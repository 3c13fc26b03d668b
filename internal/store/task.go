package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create inserts a new task. On success the store-assigned ID and
	// CreatedAt are written back into task.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its primary key.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns up to limit tasks in insertion order, skipping the first
	// offset rows.
	List(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// Update applies the supplied patch fields, refreshes UpdatedAt and
	// returns the updated row. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete physically removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored tasks.
	Count(ctx context.Context) (int64, error)

	// WithTx returns a TaskStore bound to the given session transaction.
	//
	// Example usage:
	//   err := sessions.RunInSession(ctx, func(ctx context.Context, tx *sql.Tx) error {
	//       return taskStore.WithTx(tx).Delete(ctx, id)
	//   })
	WithTx(tx *sql.Tx) TaskStore
}
