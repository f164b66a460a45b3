package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/countwave/internal/database"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	// Enable foreign key constraints
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	for _, stmt := range database.Schema() {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("Failed to create schema: %v", err)
		}
	}

	return db
}

// CreateTestWorkspace inserts a workspace and returns its ID
func CreateTestWorkspace(t *testing.T, db *sql.DB, ownerID, name string) int {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO workspaces (name, owner_id) VALUES (?, ?)", name, ownerID)
	if err != nil {
		t.Fatalf("Failed to create test workspace: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

// ShareTestWorkspace marks a workspace public under publicID
func ShareTestWorkspace(t *testing.T, db *sql.DB, workspaceID int, publicID string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		"UPDATE workspaces SET is_public = 1, public_id = ? WHERE id = ?", publicID, workspaceID)
	if err != nil {
		t.Fatalf("Failed to share test workspace: %v", err)
	}
}

// CreateTestTodo appends a todo to a workspace and returns its ID
func CreateTestTodo(t *testing.T, db *sql.DB, workspaceID int, task string) int {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		`INSERT INTO todos (workspace_id, task, "order")
		 VALUES (?, ?, (SELECT COALESCE(MAX("order"), -1) + 1 FROM todos WHERE workspace_id = ?))`,
		workspaceID, task, workspaceID)
	if err != nil {
		t.Fatalf("Failed to create test todo: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

// CreateTestSubtask appends a subtask to a todo and returns its ID
func CreateTestSubtask(t *testing.T, db *sql.DB, todoID int, name string) int {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		`INSERT INTO subtasks (todo_id, name, "order")
		 VALUES (?, ?, (SELECT COALESCE(MAX("order"), -1) + 1 FROM subtasks WHERE todo_id = ?))`,
		todoID, name, todoID)
	if err != nil {
		t.Fatalf("Failed to create test subtask: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}
