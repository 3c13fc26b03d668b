// Package service provides the application-level task operations. Every
// operation runs inside one database session and performs one logical store
// operation.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/task-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrTaskNotFound indicates that the task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUnavailable indicates that no database session could be obtained in
	// time. API layer should map this to HTTP 503 Service Unavailable.
	ErrUnavailable = errors.New("service unavailable")
)

// ServiceError wraps unexpected errors from the task service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Expected conditions are returned as sentinels instead of being wrapped:
// a missing task becomes ErrTaskNotFound. Pool exhaustion is wrapped so that
// both ErrUnavailable and store.ErrPoolTimeout match.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}

	if errors.Is(err, store.ErrPoolTimeout) {
		return &ServiceError{
			Operation: operation,
			Message:   "no database session available",
			Err:       fmt.Errorf("%w: %w", ErrUnavailable, err),
		}
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
