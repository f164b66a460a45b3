package cli

import (
	"database/sql"
	"testing"

	"github.com/thenoetrevino/countwave/internal/app"
	"github.com/thenoetrevino/countwave/internal/database"
	"github.com/thenoetrevino/countwave/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// The broker is never started; events stay queued and are dropped on Close
	appInstance := app.New(database.NewRepository(db))
	t.Cleanup(func() { _ = appInstance.Close() })

	return db, appInstance
}

// CreateTestWorkspace wraps testutil.CreateTestWorkspace for CLI tests
func CreateTestWorkspace(t *testing.T, db *sql.DB, ownerID, name string) int {
	t.Helper()
	return testutil.CreateTestWorkspace(t, db, ownerID, name)
}

// CreateTestTodo wraps testutil.CreateTestTodo for CLI tests
func CreateTestTodo(t *testing.T, db *sql.DB, workspaceID int, task string) int {
	t.Helper()
	return testutil.CreateTestTodo(t, db, workspaceID, task)
}

// CreateTestSubtask wraps testutil.CreateTestSubtask for CLI tests
func CreateTestSubtask(t *testing.T, db *sql.DB, todoID int, name string) int {
	t.Helper()
	return testutil.CreateTestSubtask(t, db, todoID, name)
}
