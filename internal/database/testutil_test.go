package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestRepo creates an in-memory database through InitDB
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

func createTestWorkspace(t *testing.T, repo *Repository, owner, name string) *models.Workspace {
	t.Helper()
	ws, err := repo.CreateWorkspace(context.Background(), owner, name)
	require.NoError(t, err)
	return ws
}

func createTestTodo(t *testing.T, repo *Repository, workspaceID int, task string) *models.Todo {
	t.Helper()
	todo, err := repo.CreateTodo(context.Background(), workspaceID, task, "")
	require.NoError(t, err)
	return todo
}
