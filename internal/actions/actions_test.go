package actions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/auth"
	"github.com/thenoetrevino/countwave/internal/database"
	"github.com/thenoetrevino/countwave/internal/models"
	subtaskservice "github.com/thenoetrevino/countwave/internal/services/subtask"
	todoservice "github.com/thenoetrevino/countwave/internal/services/todo"
	workspaceservice "github.com/thenoetrevino/countwave/internal/services/workspace"
	"github.com/thenoetrevino/countwave/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fixture struct {
	db          *sql.DB
	actions     *Actions
	workspaceID int
	todoID      int
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	pub := &testutil.RecordingPublisher{}

	wsID := testutil.CreateTestWorkspace(t, db, "user_1", "School")
	return fixture{
		db: db,
		actions: New(
			workspaceservice.NewService(repo, pub),
			todoservice.NewService(repo, pub),
			subtaskservice.NewService(repo, pub),
		),
		workspaceID: wsID,
		todoID:      testutil.CreateTestTodo(t, db, wsID, "Reading"),
	}
}

func as(userID string) context.Context {
	return auth.WithUser(context.Background(), &models.User{ID: userID, Name: "Test"})
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ============================================================================
// AUTHORIZATION
// ============================================================================

func TestActions_RequireUser(t *testing.T) {
	f := setup(t)

	res := f.actions.UpdateTodo(context.Background(), UpdateTodoInput{Todo: TodoFields{
		ID: f.todoID, WorkspaceID: f.workspaceID, Task: "Reading",
	}})

	assert.False(t, res.OK())
	assert.Equal(t, MsgUnauthorized, res.Error)
}

func TestActions_RejectOtherOwner(t *testing.T) {
	f := setup(t)

	res := f.actions.DeleteTodo(as("user_2"), DeleteTodoInput{ID: f.todoID, WorkspaceID: f.workspaceID})
	assert.Equal(t, MsgUnauthorized, res.Error)

	// the todo must survive
	got := f.actions.UpdateTodo(as("user_1"), UpdateTodoInput{Todo: TodoFields{
		ID: f.todoID, WorkspaceID: f.workspaceID, Task: "Reading",
	}})
	assert.True(t, got.OK())
}

func TestActions_TodoInOtherWorkspaceIsNotFound(t *testing.T) {
	f := setup(t)
	other := testutil.CreateTestWorkspace(t, f.db, "user_1", "Home")

	res := f.actions.DeleteTodo(as("user_1"), DeleteTodoInput{ID: f.todoID, WorkspaceID: other})

	assert.Equal(t, MsgNotFound, res.Error)
}

func TestActions_MissingWorkspaceIsNotFound(t *testing.T) {
	f := setup(t)

	res := f.actions.CreateTodo(as("user_1"), CreateTodoInput{WorkspaceID: 999, Task: "Ghost"})

	assert.Equal(t, MsgNotFound, res.Error)
}

// ============================================================================
// VALIDATION
// ============================================================================

func TestUpdateTodo_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		desc    string
		field   string
		message string
	}{
		{"empty title", "", "", "task", "Task name is required."},
		{"long title", strings.Repeat("a", 61), "", "task", "Task name exceeds 60 characters."},
		{"long description", "Reading", strings.Repeat("d", 201), "description", "Task description exceeds 200 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			res := f.actions.UpdateTodo(as("user_1"), UpdateTodoInput{Todo: TodoFields{
				ID: f.todoID, WorkspaceID: f.workspaceID, Task: tt.task, Description: tt.desc,
			}})

			assert.Equal(t, MsgInvalidInput, res.Error)
			assert.Equal(t, tt.message, res.FieldError(tt.field))
		})
	}
}

func TestUpdateTodo_WhitespaceTitleCaughtByService(t *testing.T) {
	f := setup(t)

	res := f.actions.UpdateTodo(as("user_1"), UpdateTodoInput{Todo: TodoFields{
		ID: f.todoID, WorkspaceID: f.workspaceID, Task: "   ",
	}})

	assert.Equal(t, MsgInvalidInput, res.Error)
	assert.Equal(t, "Task name is required.", res.FieldError("task"))
}

func TestReorderTodo_RejectsUnknownDirection(t *testing.T) {
	f := setup(t)

	res := f.actions.ReorderTodo(as("user_1"), ReorderTodoInput{
		ID: f.todoID, WorkspaceID: f.workspaceID, Direction: "sideways",
	})

	assert.Equal(t, MsgInvalidInput, res.Error)
	assert.NotEmpty(t, res.FieldErrors["direction"])
}

// ============================================================================
// HAPPY PATHS
// ============================================================================

func TestUpdateTodo_RenamesAndKeepsOrder(t *testing.T) {
	f := setup(t)
	ctx := as("user_1")
	homework := f.actions.CreateTodo(ctx, CreateTodoInput{WorkspaceID: f.workspaceID, Task: "Homework"})
	require.True(t, homework.OK(), homework.Error)

	res := f.actions.UpdateTodo(ctx, UpdateTodoInput{Todo: TodoFields{
		ID: homework.Data.ID, WorkspaceID: f.workspaceID, Task: "  Homework Draft ", Description: "ch. 4",
	}})
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "Homework Draft", res.Data.Task)

	moved := f.actions.ReorderTodo(ctx, ReorderTodoInput{ID: f.todoID, WorkspaceID: f.workspaceID, Direction: "up"})
	assert.Equal(t, MsgAlreadyFirst, moved.Error)

	moved = f.actions.ReorderTodo(ctx, ReorderTodoInput{ID: f.todoID, WorkspaceID: f.workspaceID, Direction: "down"})
	require.True(t, moved.OK(), moved.Error)
	require.Len(t, moved.Data, 2)
	assert.Equal(t, "Homework Draft", moved.Data[0].Task)
	assert.Equal(t, "Reading", moved.Data[1].Task)
}

func TestUpdateTodo_TogglesCompletion(t *testing.T) {
	f := setup(t)

	res := f.actions.UpdateTodo(as("user_1"), UpdateTodoInput{Todo: TodoFields{
		ID: f.todoID, WorkspaceID: f.workspaceID, Task: "Reading", IsCompleted: boolPtr(true),
	}})

	require.True(t, res.OK(), res.Error)
	assert.True(t, res.Data.IsCompleted)
}

func TestDeleteTodo_ReturnsWorkspace(t *testing.T) {
	f := setup(t)

	res := f.actions.DeleteTodo(as("user_1"), DeleteTodoInput{ID: f.todoID, WorkspaceID: f.workspaceID})

	require.True(t, res.OK(), res.Error)
	assert.Equal(t, f.workspaceID, res.Data.WorkspaceID)
}

func TestSubTodo_Lifecycle(t *testing.T) {
	f := setup(t)
	ctx := as("user_1")

	created := f.actions.CreateSubTodo(ctx, CreateSubTodoInput{
		WorkspaceID: f.workspaceID, TodoID: f.todoID, Name: models.DefaultSubtaskName,
	})
	require.True(t, created.OK(), created.Error)
	assert.Equal(t, models.DefaultSubtaskName, created.Data.Name)

	updated := f.actions.UpdateSubTodo(ctx, UpdateSubTodoInput{
		ID: created.Data.ID, WorkspaceID: f.workspaceID, Name: strPtr("Chapter 1"), IsCompleted: boolPtr(true),
	})
	require.True(t, updated.OK(), updated.Error)
	assert.Equal(t, "Chapter 1", updated.Data.Name)
	assert.True(t, updated.Data.IsCompleted)

	// a subtask is only reachable through its own workspace
	other := testutil.CreateTestWorkspace(t, f.db, "user_1", "Home")
	wrong := f.actions.DeleteSubTodo(ctx, DeleteSubTodoInput{ID: created.Data.ID, WorkspaceID: other})
	assert.Equal(t, MsgNotFound, wrong.Error)

	deleted := f.actions.DeleteSubTodo(ctx, DeleteSubTodoInput{ID: created.Data.ID, WorkspaceID: f.workspaceID})
	require.True(t, deleted.OK(), deleted.Error)
}

func TestWorkspaceActions(t *testing.T) {
	f := setup(t)
	ctx := as("user_1")

	created := f.actions.CreateWorkspace(ctx, CreateWorkspaceInput{Name: "Work"})
	require.True(t, created.OK(), created.Error)
	assert.Equal(t, "user_1", created.Data.OwnerID)

	tooLong := f.actions.CreateWorkspace(ctx, CreateWorkspaceInput{Name: strings.Repeat("w", 41)})
	assert.Equal(t, MsgInvalidInput, tooLong.Error)
	assert.NotEmpty(t, tooLong.FieldError("name"))

	hidden := f.actions.UpdateWorkspace(ctx, UpdateWorkspaceInput{ID: created.Data.ID, IsVisible: boolPtr(false)})
	require.True(t, hidden.OK(), hidden.Error)
	assert.False(t, hidden.Data.IsVisible)
	assert.Equal(t, "Work", hidden.Data.Name)

	shared := f.actions.ShareWorkspace(ctx, ShareWorkspaceInput{ID: created.Data.ID, IsPublic: true})
	require.True(t, shared.OK(), shared.Error)
	assert.True(t, shared.Data.IsPublic)
	assert.NotEmpty(t, shared.Data.PublicID)

	deleted := f.actions.DeleteWorkspace(as("user_2"), DeleteWorkspaceInput{ID: created.Data.ID})
	assert.Equal(t, MsgUnauthorized, deleted.Error)

	deleted = f.actions.DeleteWorkspace(ctx, DeleteWorkspaceInput{ID: created.Data.ID})
	require.True(t, deleted.OK(), deleted.Error)
}

// ============================================================================
// DISPATCH
// ============================================================================

func TestDispatch_UnknownAction(t *testing.T) {
	f := setup(t)

	_, err := f.actions.Dispatch(as("user_1"), "dropTables", []byte(`{}`))

	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestDispatch_ValidatesRawDocument(t *testing.T) {
	f := setup(t)

	// "task" is absent, not empty: only the raw document can tell
	out, err := f.actions.Dispatch(as("user_1"), "updateTodo",
		[]byte(`{"todo":{"id":1,"workspaceId":1}}`))
	require.NoError(t, err)

	assert.False(t, out.OK())
	assert.Equal(t, MsgInvalidInput, out.Message())
}

func TestDispatch_MalformedJSON(t *testing.T) {
	f := setup(t)

	out, err := f.actions.Dispatch(as("user_1"), "createTodo", []byte(`{`))
	require.NoError(t, err)

	assert.Equal(t, MsgInvalidInput, out.Message())
}

func TestDispatch_EncodesResult(t *testing.T) {
	f := setup(t)

	body, err := json.Marshal(map[string]any{"workspaceId": f.workspaceID, "todoId": f.todoID, "name": "Outline"})
	require.NoError(t, err)

	out, err := f.actions.Dispatch(as("user_1"), "createSubTodo", body)
	require.NoError(t, err)
	require.True(t, out.OK(), out.Message())

	encoded, err := json.Marshal(out)
	require.NoError(t, err)

	var wire struct {
		Data  *models.Subtask `json:"data"`
		Error string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(encoded, &wire))
	require.NotNil(t, wire.Data)
	assert.Equal(t, "Outline", wire.Data.Name)
	assert.Empty(t, wire.Error)
}

func TestNames(t *testing.T) {
	f := setup(t)

	names := f.actions.Names()

	assert.Len(t, names, 11)
	assert.Contains(t, names, "updateTodo")
	assert.Contains(t, names, "createSubTodo")
}
