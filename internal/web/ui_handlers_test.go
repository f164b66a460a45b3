package web

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/models"
	"github.com/thenoetrevino/countwave/internal/testutil"
)

type editFixture struct {
	b        *browser
	wsID     int
	homework int
}

func newEditFixture(t *testing.T) editFixture {
	t.Helper()
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	testutil.CreateTestTodo(t, db, wsID, "Reading")
	homework := testutil.CreateTestTodo(t, db, wsID, "Homework")

	b := newBrowser(t, srv, testOwner)
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, dashboardPath(wsID), nil).Code)
	return editFixture{b: b, wsID: wsID, homework: homework}
}

func (f editFixture) open(t *testing.T) string {
	t.Helper()
	return f.b.post(fmt.Sprintf("/ui/todos/%d/open", f.homework), map[string]any{"workspaceId": f.wsID})
}

func TestUI_RequiresIdentity(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := newBrowser(t, srv, "").do(http.MethodPost, "/ui/profile", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUI_OpenTodoSeedsForm(t *testing.T) {
	f := newEditFixture(t)
	body := f.open(t)

	assert.Contains(t, body, "Edit task")
	assert.Contains(t, body, `"task":"Homework"`)
	assert.Contains(t, body, "(0)")
}

func TestUI_SaveInvalidNeverUpdates(t *testing.T) {
	f := newEditFixture(t)
	f.open(t)

	body := f.b.post("/ui/edit/save", map[string]any{"workspaceId": f.wsID, "task": "", "description": ""})
	assert.Contains(t, body, actions.MsgTaskRequired)

	long := make([]byte, models.TaskMaxLen+1)
	for i := range long {
		long[i] = 'a'
	}
	body = f.b.post("/ui/edit/save", map[string]any{"workspaceId": f.wsID, "task": string(long), "description": ""})
	assert.Contains(t, body, actions.MsgTaskTooLong)

	page := f.b.do(http.MethodGet, dashboardPath(f.wsID), nil).Body.String()
	indexOrder(t, page, "Reading", "Homework")
	assert.NotContains(t, taskListSection(page), string(long))
}

func TestUI_SaveUpdatesTaskList(t *testing.T) {
	f := newEditFixture(t)
	f.open(t)

	body := f.b.post("/ui/edit/save", map[string]any{
		"workspaceId": f.wsID,
		"task":        "Homework Draft",
		"description": "Chapter 3",
	})
	assert.Contains(t, body, "Todo updated.")
	indexOrder(t, body, "Reading", "Homework Draft")

	page := f.b.do(http.MethodGet, dashboardPath(f.wsID), nil).Body.String()
	indexOrder(t, page, "Reading", "Homework Draft", "Chapter 3")
}

func TestUI_AddSubtaskOpensIt(t *testing.T) {
	f := newEditFixture(t)
	f.open(t)

	body := f.b.post("/ui/edit/subtasks", map[string]any{"workspaceId": f.wsID})
	assert.Contains(t, body, "(1)")
	assert.Contains(t, body, models.DefaultSubtaskName)
	assert.Contains(t, body, `"subtaskName":"Untitled Subtask"`)
	assert.Contains(t, body, "data-bind:subtask-name")
}

func TestUI_DeleteNavigatesToWorkspace(t *testing.T) {
	f := newEditFixture(t)
	f.open(t)

	body := f.b.post("/ui/edit/delete", map[string]any{"workspaceId": f.wsID})
	assert.Contains(t, body, "window.location.href")
	assert.Contains(t, body, dashboardPath(f.wsID))

	page := f.b.do(http.MethodGet, dashboardPath(f.wsID), nil).Body.String()
	assert.NotContains(t, page, "Edit task")
	assert.NotContains(t, taskListSection(page), "Homework")
	assert.Contains(t, page, "Todo deleted.")
}

func TestUI_CloseModal(t *testing.T) {
	f := newEditFixture(t)
	f.open(t)

	body := f.b.post("/ui/modal/close", map[string]any{"workspaceId": f.wsID})
	assert.NotContains(t, body, "Edit task")
}

func TestUI_SidebarDragClamps(t *testing.T) {
	f := newEditFixture(t)

	body := f.b.post("/ui/sidebar/move", map[string]any{"clientX": 300})
	assert.Contains(t, body, `"sidebarWidth":"240px"`, "moves outside a drag are ignored")

	body = f.b.post("/ui/sidebar/down", nil)
	assert.Contains(t, body, `"isResizing":true`)

	body = f.b.post("/ui/sidebar/move", map[string]any{"clientX": 900})
	assert.Contains(t, body, `"sidebarWidth":"480px"`)

	body = f.b.post("/ui/sidebar/move", map[string]any{"clientX": 100})
	assert.Contains(t, body, `"sidebarWidth":"240px"`)

	body = f.b.post("/ui/sidebar/up", nil)
	assert.Contains(t, body, `"isResizing":false`)
}

func TestUI_CollapseClearsResetFlag(t *testing.T) {
	f := newEditFixture(t)

	body := f.b.post("/ui/sidebar/collapse", nil)
	assert.Contains(t, body, `"isCollapsed":true`)
	assert.Contains(t, body, `"isResetting":true`)
	assert.Contains(t, body, `"isResetting":false`)
}

func TestUI_CreateWorkspace(t *testing.T) {
	f := newEditFixture(t)

	body := f.b.post("/ui/workspaces/new", nil)
	assert.Contains(t, body, "New workspace")
	assert.Contains(t, body, `"workspaceName":"Untitled"`)

	body = f.b.post("/ui/workspaces/create", map[string]any{"workspaceName": ""})
	assert.Contains(t, body, actions.MsgNameRequired)

	body = f.b.post("/ui/workspaces/create", map[string]any{"workspaceName": "Projects"})
	assert.Contains(t, body, "window.location.href")
	assert.Contains(t, body, "/dashboard/")
}

func TestUI_ShareWorkspace(t *testing.T) {
	f := newEditFixture(t)

	body := f.b.post(fmt.Sprintf("/ui/workspaces/%d/share", f.wsID), map[string]any{"workspaceId": f.wsID})
	assert.Contains(t, body, "Share")
	assert.Contains(t, body, `"isPublic":false`)

	body = f.b.post("/ui/share/public", map[string]any{"workspaceId": f.wsID, "isPublic": true})
	assert.Contains(t, body, "http://countwave.test/preview/")
	assert.Contains(t, body, "Workspace is now public.")
}

func TestUI_ProfileUsesTheme(t *testing.T) {
	f := newEditFixture(t)

	body := f.b.post("/ui/profile", nil)
	assert.Contains(t, body, "ada@example.com")

	body = f.b.post("/ui/theme", map[string]any{"theme": "dark"})
	assert.Contains(t, body, "#1f2937")
}

func TestUI_CreateAndMoveTodo(t *testing.T) {
	f := newEditFixture(t)

	body := f.b.post("/ui/todos", map[string]any{"workspaceId": f.wsID, "newTask": "Essay"})
	assert.Contains(t, body, "Todo created.")
	indexOrder(t, body, "Reading", "Homework", "Essay")

	body = f.b.post(fmt.Sprintf("/ui/todos/%d/move/up", f.homework), map[string]any{"workspaceId": f.wsID})
	indexOrder(t, body, "Homework", "Reading", "Essay")

	body = f.b.post("/ui/todos", map[string]any{"workspaceId": f.wsID, "newTask": ""})
	assert.Contains(t, body, actions.MsgTaskRequired)
}
