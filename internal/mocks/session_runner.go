package mocks

import (
	"context"
	"sync/atomic"

	"github.com/phrazzld/task-api/internal/store"
)

// MockSessionRunner implements store.SessionRunner for testing.
// By default it calls fn with a nil transaction, which MockTaskStore accepts.
type MockSessionRunner struct {
	RunInSessionFn func(ctx context.Context, fn store.TxFn) error

	calls atomic.Int64
}

var _ store.SessionRunner = (*MockSessionRunner)(nil)

// RunInSession implements the SessionRunner interface
func (m *MockSessionRunner) RunInSession(ctx context.Context, fn store.TxFn) error {
	m.calls.Add(1)
	if m.RunInSessionFn != nil {
		return m.RunInSessionFn(ctx, fn)
	}
	return fn(ctx, nil)
}

// Calls returns how many sessions were opened.
func (m *MockSessionRunner) Calls() int64 {
	return m.calls.Load()
}
