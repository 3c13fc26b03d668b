package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Without function overrides it behaves like the PostgreSQL store: IDs are
// assigned sequentially starting at 1 and never reused.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn    func(ctx context.Context, offset, limit int) ([]*domain.Task, error)
	UpdateFn  func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn  func(ctx context.Context, id int64) error
	CountFn   func(ctx context.Context) (int64, error)

	// Now supplies timestamps; defaults to time.Now.
	Now func() time.Time

	mu     sync.Mutex
	tasks  map[int64]domain.Task
	nextID int64
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new empty in-memory store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Now:    time.Now,
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
	}
}

// WithTx returns the same store; the in-memory store has no transactions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	task.CreatedAt = m.now()
	task.UpdatedAt = nil
	m.nextID++
	m.tasks[task.ID] = *task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.tasks))
	for id := range m.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*domain.Task, 0)
	for i := offset; i < len(ids) && len(result) < limit; i++ {
		task := m.tasks[ids[i]]
		result = append(result, &task)
	}
	return result, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	patch.Apply(&task)
	now := m.now()
	task.UpdatedAt = &now
	m.tasks[id] = task
	return &task, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Count implements the TaskStore interface
func (m *MockTaskStore) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.tasks)), nil
}

func (m *MockTaskStore) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}
