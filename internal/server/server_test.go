package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/backend/rest"
	"tasksync/internal/manager"
	"tasksync/internal/service"
	"tasksync/internal/taskerr"
	"tasksync/internal/taskstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*httptest.Server, *taskstore.Store) {
	t.Helper()
	store := taskstore.New()
	srv := httptest.NewServer(New(store, nil).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestServer_CreateValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"title":"ab","description":"valid text"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Title must be at least 3 characters", body["detail"])
}

func TestServer_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/tasks", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_UnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		resp, body := doJSON(t, method, srv.URL+"/tasks/nope", `{"is_completed":true}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
		assert.Equal(t, "Task not found", body["detail"], method)
	}
}

func TestServer_DeleteReturnsStatus(t *testing.T) {
	srv, store := newTestServer(t)
	task, err := store.Create(service.TaskCreate{Title: "Temp", Description: "to be deleted"})
	require.NoError(t, err)

	resp, body := doJSON(t, http.MethodDelete, srv.URL+"/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Empty(t, store.List())
}

// TestEndToEnd drives the manager through the rest gateway against the server.
func TestEndToEnd(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	gw := rest.NewWithHTTPClient(srv.URL, srv.Client(), nil)
	m := manager.New(gw)

	m.FetchTasks(ctx)
	require.Empty(t, m.State().ErrorMessage)
	assert.Empty(t, m.State().Tasks)

	require.True(t, m.CreateTask(ctx, service.TaskCreate{Title: "Buy milk", Description: "Two litres"}))
	require.True(t, m.CreateTask(ctx, service.TaskCreate{Title: "Call mom", Description: "Sunday evening"}))
	require.Len(t, m.State().Tasks, 2)
	first := m.State().Tasks[0]
	assert.Equal(t, "Buy milk", first.Title)
	assert.NotEmpty(t, first.CreatedAt)

	require.True(t, m.ToggleTaskComplete(ctx, first.ID))
	require.Len(t, m.State().Tasks, 1)
	assert.Equal(t, "Call mom", m.State().Tasks[0].Title)
	assert.Len(t, store.List(), 2, "completed tasks stay on the server")

	// The completed task is filtered out and cannot be toggled back here.
	assert.False(t, m.ToggleTaskComplete(ctx, first.ID))

	before := m.State().Tasks
	assert.False(t, m.UpdateTask(ctx, service.TaskPatch{ID: "missing", Title: service.String("Yes sir")}))
	assert.Equal(t, before, m.State().Tasks)
	assert.Equal(t, taskerr.KindNotFound, m.LastError().Kind)

	assert.False(t, m.DeleteTask(ctx, "missing"))
	assert.Equal(t, "Task not found", m.State().ErrorMessage)
	assert.Equal(t, before, m.State().Tasks)

	require.True(t, m.DeleteTask(ctx, m.State().Tasks[0].ID))
	assert.Empty(t, m.State().Tasks)
	assert.Empty(t, m.State().ErrorMessage)
}
