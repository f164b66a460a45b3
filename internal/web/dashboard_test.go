package web

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/auth"
	"github.com/thenoetrevino/countwave/internal/events"
	"github.com/thenoetrevino/countwave/internal/models"
	"github.com/thenoetrevino/countwave/internal/testutil"
)

func TestDashboard_RequiresIdentity(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	b := newBrowser(t, srv, "")

	for _, path := range []string{"/", "/dashboard", dashboardPath(wsID), dashboardPath(wsID) + "/events"} {
		assert.Equal(t, http.StatusUnauthorized, b.do(http.MethodGet, path, nil).Code, path)
	}
}

func TestHome_RedirectsToFirstWorkspace(t *testing.T) {
	srv, db := newTestServer(t)
	first := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	testutil.CreateTestWorkspace(t, db, testOwner, "Work")

	rec := newBrowser(t, srv, testOwner).do(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, dashboardPath(first), rec.Header().Get("Location"))
}

func TestHome_NoWorkspaces(t *testing.T) {
	srv, _ := newTestServer(t)
	b := newBrowser(t, srv, testOwner)

	rec := b.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = b.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No workspace selected")
}

func TestDashboard_RendersTodosInOrder(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	testutil.CreateTestTodo(t, db, wsID, "Reading")
	homework := testutil.CreateTestTodo(t, db, wsID, "Homework")
	b := newBrowser(t, srv, testOwner)

	rec := b.do(http.MethodGet, dashboardPath(wsID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	indexOrder(t, rec.Body.String(), "Reading", "Homework")
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("/dashboard/%d/events", wsID))

	rec = b.do(http.MethodPost, "/api/actions/updateTodo", map[string]any{
		"todo": map[string]any{"id": homework, "workspaceId": wsID, "task": "Homework Draft"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = b.do(http.MethodGet, dashboardPath(wsID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	indexOrder(t, rec.Body.String(), "Reading", "Homework Draft")
}

func TestDashboard_OtherOwnerIsNotFound(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, "user_2", "Private")
	testutil.CreateTestTodo(t, db, wsID, "Secret")

	b := newBrowser(t, srv, testOwner)
	rec := b.do(http.MethodGet, dashboardPath(wsID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Secret")

	assert.Equal(t, http.StatusNotFound, b.do(http.MethodGet, dashboardPath(wsID)+"/events", nil).Code)
	assert.Equal(t, http.StatusNotFound, b.do(http.MethodGet, dashboardPath(999), nil).Code)
}

func TestDashboard_HiddenWorkspacesLeftOutOfSidebar(t *testing.T) {
	srv, db := newTestServer(t)
	school := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	archive := testutil.CreateTestWorkspace(t, db, testOwner, "Archive")
	_, err := db.ExecContext(context.Background(), "UPDATE workspaces SET is_visible = 0 WHERE id = ?", archive)
	require.NoError(t, err)

	b := newBrowser(t, srv, testOwner)
	rec := b.do(http.MethodGet, dashboardPath(school), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Archive")

	// still reachable directly, and listed while open
	rec = b.do(http.MethodGet, dashboardPath(archive), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Archive")
}

// openEvents connects to a dashboard event stream over a real listener
func openEvents(t *testing.T, srv *Server, workspaceID int) *bufio.Scanner {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+dashboardPath(workspaceID)+"/events", nil)
	require.NoError(t, err)
	req.Header.Set(auth.HeaderUserID, testOwner)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return bufio.NewScanner(resp.Body)
}

// readUntil consumes the stream until a line contains want and returns
// everything read so far
func readUntil(t *testing.T, sc *bufio.Scanner, want string) string {
	t.Helper()
	var seen strings.Builder
	for sc.Scan() {
		seen.WriteString(sc.Text())
		seen.WriteString("\n")
		if strings.Contains(sc.Text(), want) {
			return seen.String()
		}
	}
	t.Fatalf("stream ended before %q: %v\n%s", want, sc.Err(), seen.String())
	return ""
}

func TestDashboardEvents_RefreshAfterWrite(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	sc := openEvents(t, srv, wsID)

	ctx := auth.WithUser(context.Background(), &models.User{ID: testOwner})
	res := srv.app.Actions.CreateTodo(ctx, actions.CreateTodoInput{WorkspaceID: wsID, Task: "Reading"})
	require.True(t, res.OK(), res.Error)

	readUntil(t, sc, "Reading")
}

func TestDashboardEvents_RefreshFailureStaysOnServer(t *testing.T) {
	srv, db := newTestServer(t)
	wsID := testutil.CreateTestWorkspace(t, db, testOwner, "School")
	sc := openEvents(t, srv, wsID)

	require.NoError(t, db.Close())
	require.NoError(t, srv.app.Broker().SendEvent(events.Event{Type: events.EventWorkspaceChanged, WorkspaceID: wsID}))

	seen := readUntil(t, sc, "live refresh failed")
	assert.NotContains(t, seen, "sql:")
	assert.NotContains(t, seen, "database is closed")
}
