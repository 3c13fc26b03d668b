package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// Client-facing error messages.
const (
	MsgTaskNotFound       = "Task not found"
	MsgServiceUnavailable = "Service unavailable"
	MsgInternalError      = "Internal server error"
	MsgValidationFailed   = "Validation error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	case errors.Is(err, service.ErrUnavailable),
		errors.Is(err, store.ErrPoolTimeout):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternalError
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return MsgTaskNotFound

	case errors.Is(err, domain.ErrValidation):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return MsgValidationFailed

	case errors.Is(err, service.ErrUnavailable),
		errors.Is(err, store.ErrPoolTimeout):
		return MsgServiceUnavailable

	default:
		return MsgInternalError
	}
}

// SanitizeValidationError converts validator errors into a domain
// ValidationError naming the first offending field, so raw validator output
// never reaches the client. Other errors are returned unchanged.
func SanitizeValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	fieldErr := validationErrs[0]
	return domain.NewValidationError(
		strings.ToLower(fieldErr.Field()),
		getValidationTagMessage(fieldErr.Tag(), fieldErr.Param()),
		domain.ErrInvalidFormat,
	)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "field required"
	case "gte":
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lte":
		return "must be less than or equal to " + param
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status code and safe message for err, logging
// the underlying error. When userMessage is empty the message is derived
// from the error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
