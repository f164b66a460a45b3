package todo

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/cli"
	clitest "github.com/thenoetrevino/countwave/internal/testutil/cli"
)

func TestCreateTodo(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	wsID := clitest.CreateTestWorkspace(t, db, "user_1", "School")

	t.Run("Todos are appended in order", func(t *testing.T) {
		for _, task := range []string{"Reading", "Homework"} {
			_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
				"--workspace", itoa(wsID), "--task", task, "--owner", "user_1", "--quiet",
			})
			require.NoError(t, err)
		}
		assert.Equal(t, []string{"Reading", "Homework"}, tasksInOrder(t, db, wsID))
	})

	t.Run("JSON carries the description", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--workspace", itoa(wsID), "--task", "Essay", "--description", "Chapters **3** and 4",
			"--owner", "user_1", "--json",
		})
		require.NoError(t, err)

		result := clitest.ParseJSON(t, output)
		todo := result["todo"].(map[string]any)
		assert.Equal(t, "Essay", todo["task"])
		assert.Equal(t, "Chapters **3** and 4", todo["description"])
		assert.Equal(t, false, todo["isCompleted"])
	})

	t.Run("Task over 60 characters", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--workspace", itoa(wsID), "--task", strings.Repeat("x", 61), "--owner", "user_1", "--json",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

		errData := clitest.ParseJSON(t, output)["error"].(map[string]any)
		fields := errData["fieldErrors"].(map[string]any)
		assert.Equal(t, []any{"Task name exceeds 60 characters."}, fields["task"])
	})

	t.Run("Description over 200 characters", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--workspace", itoa(wsID), "--task", "Long", "--description", strings.Repeat("d", 201),
			"--owner", "user_1", "--json",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

		errData := clitest.ParseJSON(t, output)["error"].(map[string]any)
		fields := errData["fieldErrors"].(map[string]any)
		assert.Equal(t, []any{"Task description exceeds 200 characters."}, fields["description"])
	})

	t.Run("Foreign workspace", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--workspace", itoa(wsID), "--task", "Sneaky", "--owner", "user_2", "--quiet",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}

func TestListTodos(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	wsID := clitest.CreateTestWorkspace(t, db, "user_1", "School")
	readingID := clitest.CreateTestTodo(t, db, wsID, "Reading")
	homeworkID := clitest.CreateTestTodo(t, db, wsID, "Homework")
	clitest.CreateTestSubtask(t, db, readingID, "Chapter 3")

	t.Run("Quiet lists IDs in order", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--workspace", itoa(wsID), "--owner", "user_1", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{itoa(readingID), itoa(homeworkID)}, strings.Fields(output))
	})

	t.Run("JSON includes subtasks", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--workspace", itoa(wsID), "--owner", "user_1", "--json"})
		require.NoError(t, err)

		todos := clitest.ParseJSON(t, output)["todos"].([]any)
		require.Len(t, todos, 2)
		first := todos[0].(map[string]any)
		subtasks := first["subtasks"].([]any)
		require.Len(t, subtasks, 1)
		assert.Equal(t, "Chapter 3", subtasks[0].(map[string]any)["name"])
	})

	t.Run("Human output", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--workspace", itoa(wsID), "--owner", "user_1"})
		require.NoError(t, err)
		assert.Contains(t, output, "School (0/2 done)")
		assert.Contains(t, output, "Chapter 3")
	})
}

func TestUpdateTodo(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	wsID := clitest.CreateTestWorkspace(t, db, "user_1", "School")
	todoID := clitest.CreateTestTodo(t, db, wsID, "Homework")
	_, err := db.ExecContext(context.Background(), "UPDATE todos SET description = ? WHERE id = ?", "Pages 1-10", todoID)
	require.NoError(t, err)

	t.Run("Renaming keeps the description", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{
			"--workspace", itoa(wsID), "--id", itoa(todoID), "--task", "Homework Draft", "--owner", "user_1", "--quiet",
		})
		require.NoError(t, err)

		task, description, done := loadTodo(t, db, todoID)
		assert.Equal(t, "Homework Draft", task)
		assert.Equal(t, "Pages 1-10", description)
		assert.False(t, done)
	})

	t.Run("Done marks completion only", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{
			"--workspace", itoa(wsID), "--id", itoa(todoID), "--done", "--owner", "user_1", "--quiet",
		})
		require.NoError(t, err)

		task, _, done := loadTodo(t, db, todoID)
		assert.Equal(t, "Homework Draft", task)
		assert.True(t, done)
	})

	t.Run("Empty task is rejected and nothing changes", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{
			"--workspace", itoa(wsID), "--id", itoa(todoID), "--task", "", "--owner", "user_1", "--json",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

		task, _, _ := loadTodo(t, db, todoID)
		assert.Equal(t, "Homework Draft", task)
	})

	t.Run("Todo in another workspace", func(t *testing.T) {
		otherID := clitest.CreateTestWorkspace(t, db, "user_1", "Chores")
		_, err := clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{
			"--workspace", itoa(otherID), "--id", itoa(todoID), "--task", "Moved", "--owner", "user_1", "--quiet",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	t.Run("Nothing to update", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{
			"--workspace", itoa(wsID), "--id", itoa(todoID), "--owner", "user_1",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	})
}

func TestMoveTodo(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	wsID := clitest.CreateTestWorkspace(t, db, "user_1", "School")
	clitest.CreateTestTodo(t, db, wsID, "Reading")
	homeworkID := clitest.CreateTestTodo(t, db, wsID, "Homework")

	t.Run("Move up swaps neighbours", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"up", "--workspace", itoa(wsID), "--id", itoa(homeworkID), "--owner", "user_1", "--quiet",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Homework", "Reading"}, tasksInOrder(t, db, wsID))
	})

	t.Run("Already at the top", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"up", "--workspace", itoa(wsID), "--id", itoa(homeworkID), "--owner", "user_1", "--json",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
		assert.Equal(t, []string{"Homework", "Reading"}, tasksInOrder(t, db, wsID))
	})

	t.Run("Unknown direction", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{
			"sideways", "--workspace", itoa(wsID), "--id", itoa(homeworkID), "--owner", "user_1",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	})
}

func TestDeleteTodo(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	wsID := clitest.CreateTestWorkspace(t, db, "user_1", "School")
	todoID := clitest.CreateTestTodo(t, db, wsID, "Reading")
	clitest.CreateTestSubtask(t, db, todoID, "Chapter 1")

	t.Run("Other owner cannot delete", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{
			"--workspace", itoa(wsID), "--id", itoa(todoID), "--owner", "user_2", "--quiet",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	t.Run("Confirmed delete removes subtasks", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{
			"--workspace", itoa(wsID), "--id", itoa(todoID), "--owner", "user_1",
		}, "y\n")
		require.NoError(t, err)
		assert.Contains(t, output, "Todo "+itoa(todoID)+" deleted")
		assert.Empty(t, tasksInOrder(t, db, wsID))

		var n int
		require.NoError(t, db.QueryRowContext(context.Background(),
			"SELECT COUNT(*) FROM subtasks WHERE todo_id = ?", todoID).Scan(&n))
		assert.Zero(t, n)
	})
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

func tasksInOrder(t *testing.T, db *sql.DB, workspaceID int) []string {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		`SELECT task FROM todos WHERE workspace_id = ? ORDER BY "order"`, workspaceID)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var tasks []string
	for rows.Next() {
		var task string
		require.NoError(t, rows.Scan(&task))
		tasks = append(tasks, task)
	}
	require.NoError(t, rows.Err())
	return tasks
}

func loadTodo(t *testing.T, db *sql.DB, id int) (task, description string, done bool) {
	t.Helper()
	err := db.QueryRowContext(context.Background(),
		"SELECT task, description, is_completed FROM todos WHERE id = ?", id).Scan(&task, &description, &done)
	require.NoError(t, err)
	return task, description, done
}
