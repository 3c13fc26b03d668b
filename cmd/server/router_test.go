package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskBody struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:               8000,
			LogLevel:           "info",
			Environment:        config.EnvironmentTest,
			CORSAllowedOrigins: []string{"*"},
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       15 * time.Second,
			IdleTimeout:        60 * time.Second,
		},
		Database: config.DatabaseConfig{
			URL:             config.DefaultDatabaseURL,
			PoolSize:        5,
			MaxOverflow:     10,
			PoolTimeout:     30 * time.Second,
			ConnMaxLifetime: 30 * time.Minute,
		},
	}
}

// newTestServer runs the full router against the in-memory task store.
func newTestServer(t *testing.T) (*httptest.Server, *mocks.MockTaskStore) {
	t.Helper()

	taskStore := mocks.NewMockTaskStore()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := newApplicationWithStore(testConfig(), logger, nil, &mocks.MockSessionRunner{}, taskStore)
	require.NoError(t, err)

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return server, taskStore
}

func send(t *testing.T, method, target string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func createTask(t *testing.T, baseURL, title, description string) taskBody {
	t.Helper()

	query := url.Values{"title": {title}}
	if description != "" {
		query.Set("description", description)
	}
	resp, body := send(t, http.MethodPost, baseURL+"/tasks/?"+query.Encode())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var task taskBody
	require.NoError(t, json.Unmarshal(body, &task))
	return task
}

func TestRouter_FullCRUDWorkflow(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	created := createTask(t, server.URL, "Integration Test Task", "Test Description")
	assert.Positive(t, created.ID)
	assert.False(t, created.Completed)
	assert.Nil(t, created.UpdatedAt)

	resp, body := send(t, http.MethodGet, fmt.Sprintf("%s/tasks/%d", server.URL, created.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched taskBody
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, "Integration Test Task", fetched.Title)
	assert.Equal(t, "Test Description", fetched.Description)

	resp, body = send(t, http.MethodPut,
		fmt.Sprintf("%s/tasks/%d?title=Updated+Integration+Task&completed=True", server.URL, created.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated taskBody
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "Updated Integration Task", updated.Title)
	assert.Equal(t, "Test Description", updated.Description, "unsupplied fields keep their values")
	assert.NotNil(t, updated.UpdatedAt)

	resp, body = send(t, http.MethodDelete, fmt.Sprintf("%s/tasks/%d", server.URL, created.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, string(body))

	resp, body = send(t, http.MethodGet, fmt.Sprintf("%s/tasks/%d", server.URL, created.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Task not found"}`, string(body))

	resp, _ = send(t, http.MethodDelete, fmt.Sprintf("%s/tasks/%d", server.URL, created.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "delete is terminal")
}

func TestRouter_IDsBeyondInt32RangeAreNotFound(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	createTask(t, server.URL, "existing", "")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			resp, body := send(t, method, server.URL+"/tasks/99999999999?title=x")
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.JSONEq(t, `{"detail":"Task not found"}`, string(body))
		})
	}
}

func TestRouter_PartialUpdatesAreIndependent(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	created := createTask(t, server.URL, "A", "B")

	steps := []struct {
		query string
		want  taskBody
	}{
		{"completed=true", taskBody{Title: "A", Description: "B", Completed: true}},
		{"description=C", taskBody{Title: "A", Description: "C", Completed: true}},
		{"title=D&completed=false", taskBody{Title: "D", Description: "C", Completed: false}},
		{"description=", taskBody{Title: "D", Description: "", Completed: false}},
	}

	for _, step := range steps {
		resp, body := send(t, http.MethodPut, fmt.Sprintf("%s/tasks/%d?%s", server.URL, created.ID, step.query))
		require.Equal(t, http.StatusOK, resp.StatusCode, step.query)

		var got taskBody
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, step.want.Title, got.Title, step.query)
		assert.Equal(t, step.want.Description, got.Description, step.query)
		assert.Equal(t, step.want.Completed, got.Completed, step.query)
		assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix(), "created_at never changes")
	}
}

func TestRouter_ListPagination(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	for i := 1; i <= 5; i++ {
		createTask(t, server.URL, fmt.Sprintf("task %d", i), "")
	}

	for _, path := range []string{"/tasks", "/tasks/"} {
		resp, body := send(t, http.MethodGet, server.URL+path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		var all []taskBody
		require.NoError(t, json.Unmarshal(body, &all))
		assert.Len(t, all, 5, path)
	}

	resp, body := send(t, http.MethodGet, server.URL+"/tasks/?skip=1&limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page []taskBody
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page, 2)
	assert.Equal(t, "task 2", page[0].Title)
	assert.Equal(t, "task 3", page[1].Title)

	resp, body = send(t, http.MethodGet, server.URL+"/tasks/?skip=50")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))

	resp, _ = send(t, http.MethodGet, server.URL+"/tasks/?limit=ten")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRouter_MetricsTrackCreatesAndDeletes(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	var ids []int64
	for i := 0; i < 4; i++ {
		ids = append(ids, createTask(t, server.URL, "m", "").ID)
	}
	send(t, http.MethodDelete, fmt.Sprintf("%s/tasks/%d", server.URL, ids[0]))

	resp, body := send(t, http.MethodGet, server.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"total_tasks":3,"service_status":"running"}`, string(body))
}

func TestRouter_MetricsReportStoreFailure(t *testing.T) {
	t.Parallel()

	server, taskStore := newTestServer(t)
	taskStore.CountFn = func(ctx context.Context) (int64, error) {
		return 0, errors.New("connection refused")
	}

	resp, body := send(t, http.MethodGet, server.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"total_tasks":0,"service_status":"error"}`, string(body))
}

func TestRouter_HealthAndHeaders(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	resp, body := send(t, http.MethodGet, server.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy","service":"task-api"}`, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'self'", resp.Header.Get("Content-Security-Policy"))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	resp, _ = send(t, http.MethodGet, server.URL+"/tasks/12345")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"), "headers are set on errors too")
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/tasks/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://ui.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://ui.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestRouter_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	const n = 20
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(fmt.Sprintf("%s/tasks/?title=c%d", server.URL, i), "", nil)
			if !assert.NoError(t, err) {
				return
			}
			defer func() { _ = resp.Body.Close() }()

			var task taskBody
			if assert.NoError(t, json.NewDecoder(resp.Body).Decode(&task)) {
				mu.Lock()
				ids[task.ID] = struct{}{}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, ids, n)
}
