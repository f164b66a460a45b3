package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtaskRepo_CreateAppendsPerTodo(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	ws := createTestWorkspace(t, repo, "user_1", "School")
	reading := createTestTodo(t, repo, ws.ID, "Reading")
	homework := createTestTodo(t, repo, ws.ID, "Homework")

	s1, err := repo.CreateSubtask(ctx, reading.ID, "Chapter 1")
	require.NoError(t, err)
	s2, err := repo.CreateSubtask(ctx, reading.ID, "Chapter 2")
	require.NoError(t, err)
	s3, err := repo.CreateSubtask(ctx, homework.ID, "Problem set")
	require.NoError(t, err)

	assert.Equal(t, 0, s1.Order)
	assert.Equal(t, 1, s2.Order)
	assert.Equal(t, 0, s3.Order)
	assert.False(t, s1.IsCompleted)

	list, err := repo.GetSubtasksByTodo(ctx, reading.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, s1.ID, list[0].ID)
	assert.Equal(t, s2.ID, list[1].ID)
}

func TestSubtaskRepo_CreateRequiresTodo(t *testing.T) {
	repo := setupTestRepo(t)
	_, err := repo.CreateSubtask(context.Background(), 404, "Orphan")
	assert.Error(t, err)
}

func TestSubtaskRepo_UpdateAndDelete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	ws := createTestWorkspace(t, repo, "user_1", "School")
	todo := createTestTodo(t, repo, ws.ID, "Reading")
	sub, err := repo.CreateSubtask(ctx, todo.ID, "Chapter 1")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateSubtask(ctx, sub.ID, "Chapter One", true))
	got, err := repo.GetSubtaskByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chapter One", got.Name)
	assert.True(t, got.IsCompleted)

	require.NoError(t, repo.DeleteSubtask(ctx, sub.ID))
	assert.ErrorIs(t, repo.DeleteSubtask(ctx, sub.ID), sql.ErrNoRows)
}

func TestTodoDeleteCascadesSubtasks(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	ws := createTestWorkspace(t, repo, "user_1", "School")
	todo := createTestTodo(t, repo, ws.ID, "Reading")
	sub, err := repo.CreateSubtask(ctx, todo.ID, "Chapter 1")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTodo(ctx, todo.ID))
	_, err = repo.GetSubtaskByID(ctx, sub.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
