package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
)

// taskIDParam is the chi URL parameter naming the task.
const taskIDParam = "task_id"

// getPathID extracts an integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "field required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be a valid integer", domain.ErrInvalidID)
	}

	return id, nil
}

// queryString returns the value of key and whether it was present at all.
// A present but empty value (?title=) counts as supplied.
func queryString(values url.Values, key string) (*string, bool) {
	if _, ok := values[key]; !ok {
		return nil, false
	}
	v := values.Get(key)
	return &v, true
}

// queryInt parses an optional integer parameter, returning def when absent.
func queryInt(values url.Values, key string, def int) (int, error) {
	raw, ok := queryString(values, key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return 0, domain.NewValidationError(key, "must be a valid integer", domain.ErrInvalidFormat)
	}
	return n, nil
}

// queryBool parses an optional boolean parameter. Besides the forms accepted
// by strconv.ParseBool it understands yes/no, on/off and y/n in any case.
func queryBool(values url.Values, key string) (*bool, error) {
	raw, ok := queryString(values, key)
	if !ok {
		return nil, nil
	}
	b, err := parseBool(*raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be a valid boolean", domain.ErrInvalidFormat)
	}
	return &b, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
}
