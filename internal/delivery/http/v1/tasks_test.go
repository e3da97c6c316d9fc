package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morzdz/todo-app/internal/models"
	"github.com/morzdz/todo-app/internal/services"
	"github.com/morzdz/todo-app/internal/testutil"
)

func newTestRouter(t *testing.T) (*gin.Engine, *testutil.FakeCollection) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	collection := testutil.NewFakeCollection()
	router := gin.New()
	RegisterRoutes(router, New(zerolog.Nop(), services.NewTaskService(zerolog.Nop(), collection)))
	return router, collection
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeTasks(t *testing.T, rec *httptest.ResponseRecorder) []getTaskResponse {
	t.Helper()
	var tasks []getTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestTaskLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doRequest(router, http.MethodPost, "/api/tasks", `{"text":"buy milk","status":"pending"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created getTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "buy milk", created.Text)

	rec = doRequest(router, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []getTaskResponse{{ID: created.ID, Text: "buy milk", Status: "pending"}}, decodeTasks(t, rec))

	rec = doRequest(router, http.MethodPut, "/api/tasks/"+created.ID, `{"text":"buy milk and eggs"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+created.ID+`","text":"buy milk and eggs","status":"pending"}`, rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/api/tasks", "")
	assert.Equal(t, []getTaskResponse{{ID: created.ID, Text: "buy milk and eggs", Status: "pending"}}, decodeTasks(t, rec))

	rec = doRequest(router, http.MethodDelete, "/api/tasks/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/api/tasks", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateTaskAcceptsBlankText(t *testing.T) {
	router, collection := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/tasks", `{"text":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tasks := collection.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "", tasks[0].Text)
	assert.Equal(t, models.StatusPending, tasks[0].Status)
}

func TestCreateTaskInvalidBody(t *testing.T) {
	router, collection := newTestRouter(t)

	for _, body := range []string{`{"text":`, `{"text":42}`, `[]`} {
		rec := doRequest(router, http.MethodPost, "/api/tasks", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "invalid request body", decodeError(t, rec))
	}
	assert.Empty(t, collection.Tasks())
}

func TestUpdateTaskIsIdempotent(t *testing.T) {
	router, collection := newTestRouter(t)
	id := collection.AddTask("buy milk", models.StatusPending)

	first := doRequest(router, http.MethodPut, "/api/tasks/"+id, `{"text":"buy bread"}`)
	require.Equal(t, http.StatusOK, first.Code)
	snapshot := collection.Tasks()

	second := doRequest(router, http.MethodPut, "/api/tasks/"+id, `{"text":"buy bread"}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, snapshot, collection.Tasks())
}

func TestUpdateTaskErrors(t *testing.T) {
	router, collection := newTestRouter(t)

	rec := doRequest(router, http.MethodPut, "/api/tasks/404", `{"text":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task not found", decodeError(t, rec))

	rec = doRequest(router, http.MethodPut, "/api/tasks/not-an-id", `{"text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid task id", decodeError(t, rec))

	collection.UpdateErr = errors.New("connection refused")
	rec = doRequest(router, http.MethodPut, "/api/tasks/1", `{"text":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "connection refused", decodeError(t, rec))
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	router, collection := newTestRouter(t)
	id := collection.AddTask("buy milk", models.StatusPending)

	for i := 0; i < 2; i++ {
		rec := doRequest(router, http.MethodDelete, "/api/tasks/"+id, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Empty(t, collection.Tasks())

	rec := doRequest(router, http.MethodDelete, "/api/tasks/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid task id", decodeError(t, rec))
}

func TestListTasksStoreFailure(t *testing.T) {
	router, collection := newTestRouter(t)
	collection.FindAllErr = errors.New("server selection timeout")

	rec := doRequest(router, http.MethodGet, "/api/tasks", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server selection timeout", decodeError(t, rec))
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/tasks", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}
