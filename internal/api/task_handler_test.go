package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	ListTasksFn  func(ctx context.Context, filter store.TaskFilter, page store.PageParams) ([]*domain.Task, int64, error)
	GetTaskFn    func(ctx context.Context, id int64) (*domain.Task, error)
	CreateTaskFn func(ctx context.Context, title, description, status string, priority int) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id int64) error
}

func (m *MockTaskService) ListTasks(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageParams,
) ([]*domain.Task, int64, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, filter, page)
	}
	return []*domain.Task{}, 0, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, service.ErrTaskNotFound
}

func (m *MockTaskService) CreateTask(
	ctx context.Context,
	title, description, status string,
	priority int,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, description, status, priority)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, update)
	}
	return nil, service.ErrTaskNotFound
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

// newTaskRouter mounts the handler on a chi router the way the server does,
// so path parameters resolve in tests.
func newTaskRouter(svc service.TaskService) http.Handler {
	handler := NewTaskHandler(svc)
	r := chi.NewRouter()
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", handler.ListTasks)
		r.Post("/", handler.CreateTask)
		r.Get("/{id}", handler.GetTask)
		r.Put("/{id}", handler.UpdateTask)
		r.Delete("/{id}", handler.DeleteTask)
	})
	return r
}

func fixedTask(id int64) *domain.Task {
	fixedTime := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:          id,
		Title:       "Fixture task",
		Description: "a fixture",
		Status:      "todo",
		Priority:    2,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	}
}

// TestTaskHandler_ListTasks verifies pagination parsing, filter pass-through,
// and the response envelope.
func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("defaults_and_envelope", func(t *testing.T) {
		var gotFilter store.TaskFilter
		var gotPage store.PageParams
		svc := &MockTaskService{
			ListTasksFn: func(ctx context.Context, filter store.TaskFilter, page store.PageParams) ([]*domain.Task, int64, error) {
				gotFilter = filter
				gotPage = page
				return []*domain.Task{fixedTask(1), fixedTask(2)}, 120, nil
			},
		}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, store.TaskFilter{}, gotFilter)
		assert.Equal(t, store.PageParams{Page: 1, Size: 50}, gotPage)

		var envelope struct {
			Items []TaskResponse `json:"items"`
			Total int64          `json:"total"`
			Page  int            `json:"page"`
			Size  int            `json:"size"`
			Pages int64          `json:"pages"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Len(t, envelope.Items, 2)
		assert.Equal(t, int64(120), envelope.Total)
		assert.Equal(t, 1, envelope.Page)
		assert.Equal(t, 50, envelope.Size)
		assert.Equal(t, int64(3), envelope.Pages)
	})

	t.Run("filters_and_page_params_forwarded", func(t *testing.T) {
		var gotFilter store.TaskFilter
		var gotPage store.PageParams
		svc := &MockTaskService{
			ListTasksFn: func(ctx context.Context, filter store.TaskFilter, page store.PageParams) ([]*domain.Task, int64, error) {
				gotFilter = filter
				gotPage = page
				return []*domain.Task{}, 0, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks?title=report&status=todo&page=3&size=10", nil)
		newTaskRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, store.TaskFilter{Title: "report", Status: "todo"}, gotFilter)
		assert.Equal(t, store.PageParams{Page: 3, Size: 10}, gotPage)
	})

	t.Run("empty_page_serializes_items_as_array", func(t *testing.T) {
		svc := &MockTaskService{}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"items":[]`)
		assert.Contains(t, rec.Body.String(), `"pages":0`)
	})

	t.Run("invalid_pagination_rejected", func(t *testing.T) {
		for _, query := range []string{"?page=0", "?page=abc", "?size=0", "?size=101", "?size=x"} {
			rec := httptest.NewRecorder()
			newTaskRouter(&MockTaskService{}).ServeHTTP(rec,
				httptest.NewRequest(http.MethodGet, "/tasks"+query, nil))
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "query %s", query)
		}
	})

	t.Run("service_error_returns_500", func(t *testing.T) {
		svc := &MockTaskService{
			ListTasksFn: func(ctx context.Context, filter store.TaskFilter, page store.PageParams) ([]*domain.Task, int64, error) {
				return nil, 0, errors.New("db down")
			},
		}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down", "internal details must not leak")
	})
}

// TestTaskHandler_GetTask verifies the detail endpoint.
func TestTaskHandler_GetTask(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		getTaskFn      func(ctx context.Context, id int64) (*domain.Task, error)
		expectedStatus int
	}{
		{
			name: "found",
			path: "/tasks/7",
			getTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return fixedTask(id), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not_found",
			path: "/tasks/404",
			getTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non_numeric_id",
			path:           "/tasks/abc",
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "zero_id_falls_through_to_lookup",
			path: "/tasks/0",
			getTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				require.Equal(t, int64(0), id)
				return nil, service.ErrTaskNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "negative_id_falls_through_to_lookup",
			path: "/tasks/-1",
			getTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				require.Equal(t, int64(-1), id)
				return nil, service.ErrTaskNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "service_failure",
			path: "/tasks/7",
			getTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &MockTaskService{GetTaskFn: tc.getTaskFn}

			rec := httptest.NewRecorder()
			newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp TaskResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, int64(7), resp.ID)
				assert.Equal(t, "Fixture task", resp.Title)
			}
		})
	}
}

// TestTaskHandler_CreateTask verifies body decoding, validation, and the
// created response.
func TestTaskHandler_CreateTask(t *testing.T) {
	validBody := func() map[string]interface{} {
		return map[string]interface{}{
			"title":       "New task",
			"description": "fresh",
			"status":      "todo",
			"priority":    3,
		}
	}

	t.Run("created", func(t *testing.T) {
		var gotTitle, gotDescription, gotStatus string
		var gotPriority int
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, title, description, status string, priority int) (*domain.Task, error) {
				gotTitle, gotDescription, gotStatus, gotPriority = title, description, status, priority
				task := fixedTask(11)
				task.Title = title
				return task, nil
			},
		}

		body, err := json.Marshal(validBody())
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec,
			httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "New task", gotTitle)
		assert.Equal(t, "fresh", gotDescription)
		assert.Equal(t, "todo", gotStatus)
		assert.Equal(t, 3, gotPriority)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(11), resp.ID)
	})

	t.Run("explicit_zero_priority_accepted", func(t *testing.T) {
		var gotPriority int
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, title, description, status string, priority int) (*domain.Task, error) {
				gotPriority = priority
				return fixedTask(1), nil
			},
		}

		payload := validBody()
		payload["priority"] = 0
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec,
			httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body)))

		// validator's "required" treats 0 as missing for value types, which
		// is why the request field is a pointer
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Zero(t, gotPriority)
	})

	t.Run("malformed_json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTaskRouter(&MockTaskService{}).ServeHTTP(rec,
			httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation_failures", func(t *testing.T) {
		cases := map[string]func(map[string]interface{}){
			"missing_title":    func(m map[string]interface{}) { delete(m, "title") },
			"empty_title":      func(m map[string]interface{}) { m["title"] = "" },
			"missing_status":   func(m map[string]interface{}) { delete(m, "status") },
			"empty_status":     func(m map[string]interface{}) { m["status"] = "" },
			"missing_priority": func(m map[string]interface{}) { delete(m, "priority") },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				payload := validBody()
				mutate(payload)
				body, err := json.Marshal(payload)
				require.NoError(t, err)

				rec := httptest.NewRecorder()
				newTaskRouter(&MockTaskService{}).ServeHTTP(rec,
					httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body)))

				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			})
		}
	})

	t.Run("service_failure", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, title, description, status string, priority int) (*domain.Task, error) {
				return nil, errors.New("insert failed")
			},
		}

		body, err := json.Marshal(validBody())
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec,
			httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

// TestTaskHandler_UpdateTask verifies partial update plumbing.
func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("partial_body_forwards_only_present_fields", func(t *testing.T) {
		var gotID int64
		var gotUpdate domain.TaskUpdate
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error) {
				gotID = id
				gotUpdate = update
				task := fixedTask(id)
				task.Status = *update.Status
				return task, nil
			},
		}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(
			http.MethodPut, "/tasks/9", bytes.NewBufferString(`{"status":"done"}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(9), gotID)
		require.NotNil(t, gotUpdate.Status)
		assert.Equal(t, "done", *gotUpdate.Status)
		assert.Nil(t, gotUpdate.Title, "absent fields stay nil")
		assert.Nil(t, gotUpdate.Description)
		assert.Nil(t, gotUpdate.Priority)
	})

	t.Run("explicit_empty_description_forwarded", func(t *testing.T) {
		var gotUpdate domain.TaskUpdate
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error) {
				gotUpdate = update
				return fixedTask(id), nil
			},
		}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(
			http.MethodPut, "/tasks/9", bytes.NewBufferString(`{"description":""}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotUpdate.Description)
		assert.Empty(t, *gotUpdate.Description)
	})

	t.Run("empty_title_rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTaskRouter(&MockTaskService{}).ServeHTTP(rec, httptest.NewRequest(
			http.MethodPut, "/tasks/9", bytes.NewBufferString(`{"title":""}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
		}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(
			http.MethodPut, "/tasks/404", bytes.NewBufferString(`{"status":"done"}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non_numeric_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTaskRouter(&MockTaskService{}).ServeHTTP(rec, httptest.NewRequest(
			http.MethodPut, "/tasks/abc", bytes.NewBufferString(`{"status":"done"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

// TestTaskHandler_DeleteTask verifies deletion responses.
func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("no_content_on_success", func(t *testing.T) {
		var gotID int64
		svc := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) error {
				gotID = id
				return nil
			},
		}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/tasks/5", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, int64(5), gotID)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) error {
				return service.ErrTaskNotFound
			},
		}

		rec := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/tasks/404", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// TestTraceIDInErrorResponses verifies the trace id set by the middleware is
// echoed in error bodies.
func TestTraceIDInErrorResponses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks/404", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))

	rec := httptest.NewRecorder()
	newTaskRouter(&MockTaskService{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "Task not found", resp.Error)
}
