package web

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/testutil"
)

const testPublicID = "5f1d7c2a-8e44-4b5e-9a3b-2c6f0e9d1a77"

func TestPreview_MissingIDRedirectsHome(t *testing.T) {
	srv, _ := newTestServer(t)
	b := newBrowser(t, srv, "")

	for _, path := range []string{"/preview", "/preview/"} {
		rec := b.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}
}

func TestPreview_UnknownIDIsNotFound(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	testutil.CreateTestTodo(t, db, wsID, "Reading")

	rec := newBrowser(t, srv, "").do(http.MethodGet, "/preview/"+testPublicID, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Reading")
}

func TestPreview_PrivateWorkspaceIsNotFound(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	testutil.CreateTestTodo(t, db, wsID, "Reading")
	testutil.ShareTestWorkspace(t, db, wsID, testPublicID)

	_, err := db.ExecContext(context.Background(), "UPDATE workspaces SET is_public = 0 WHERE id = ?", wsID)
	require.NoError(t, err)

	rec := newBrowser(t, srv, "").do(http.MethodGet, "/preview/"+testPublicID, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "School")
	assert.NotContains(t, rec.Body.String(), "Reading")
}

func TestPreview_RendersOrderedTreeReadOnly(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	testutil.CreateTestTodo(t, db, wsID, "Reading")
	homework := testutil.CreateTestTodo(t, db, wsID, "Homework")
	testutil.CreateTestSubtask(t, db, homework, "Question 1")
	testutil.CreateTestSubtask(t, db, homework, "Question 2")
	_, err := db.ExecContext(context.Background(),
		"UPDATE todos SET description = ? WHERE id = ?", "Due **Friday**", homework)
	require.NoError(t, err)
	testutil.ShareTestWorkspace(t, db, wsID, testPublicID)

	// no identity needed for a shared workspace
	rec := newBrowser(t, srv, "").do(http.MethodGet, "/preview/"+testPublicID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	indexOrder(t, body, "School", "Reading", "Homework", "Question 1", "Question 2")
	assert.Contains(t, body, "<strong>Friday</strong>")
	assert.NotContains(t, body, "/ui/todos/")
	assert.NotContains(t, body, "new-todo")
	assert.Contains(t, body, `href="/"`)
	assert.Contains(t, body, "Preview")
	assert.Contains(t, body, fmt.Sprintf("/ui/preview/%s/todos/%d/open", testPublicID, homework))
}

func TestPreview_OpenTodoIsReadOnly(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	homework := testutil.CreateTestTodo(t, db, wsID, "Homework")
	testutil.CreateTestSubtask(t, db, homework, "Question 1")
	testutil.ShareTestWorkspace(t, db, wsID, testPublicID)

	b := newBrowser(t, srv, "")
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, "/preview/"+testPublicID, nil).Code)

	body := b.post(fmt.Sprintf("/ui/preview/%s/todos/%d/open", testPublicID, homework), nil)
	assert.Contains(t, body, "Homework")
	assert.Contains(t, body, "Question 1")
	assert.Contains(t, body, "/ui/preview/close")
	assert.NotContains(t, body, "/ui/edit/")
	assert.NotContains(t, body, "data-bind:task")
	assert.NotContains(t, body, "Edit task</h2>")

	body = b.post("/ui/preview/close", nil)
	assert.NotContains(t, body, "Question 1")

	// the visit never touched the data
	tree, err := srv.app.WorkspaceService.GetWorkspaceTree(context.Background(), wsID)
	require.NoError(t, err)
	require.Len(t, tree.Todos, 1)
	assert.Equal(t, "Homework", tree.Todos[0].Task)
	assert.Len(t, tree.Todos[0].Subtasks, 1)
}

func TestPreview_OpenTodoOutsideSharedWorkspace(t *testing.T) {
	srv, db := newTestServer(t)
	shared := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	testutil.CreateTestTodo(t, db, shared, "Reading")
	testutil.ShareTestWorkspace(t, db, shared, testPublicID)
	private := testutil.CreateTestWorkspace(t, db, testOwner, "Diary")
	secret := testutil.CreateTestTodo(t, db, private, "Secret")

	b := newBrowser(t, srv, "")
	rec := b.do(http.MethodPost, fmt.Sprintf("/ui/preview/%s/todos/%d/open", testPublicID, secret), map[string]any{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Secret")

	rec = b.do(http.MethodPost, fmt.Sprintf("/ui/preview/%s/todos/%d/open", "no-such-id", secret), map[string]any{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
