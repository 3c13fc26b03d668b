// Package mocks provides centralized mock implementations for testing.
//
// Each mock is a struct with one function field per interface method. When a
// field is nil the mock falls back to a working default: MockTaskStore keeps
// tasks in memory, MockSessionRunner runs the callback directly, and
// MockTaskService returns zero values.
//
// Usage:
//
//	taskStore := mocks.NewMockTaskStore()
//	taskStore.GetByIDFn = func(ctx context.Context, id int64) (*domain.Task, error) {
//	    return nil, store.ErrTaskNotFound
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
