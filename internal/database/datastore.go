package database

import (
	"context"

	"github.com/thenoetrevino/countwave/internal/models"
)

// WorkspaceRepository covers workspace persistence and tree loading
type WorkspaceRepository interface {
	CreateWorkspace(ctx context.Context, ownerID, name string) (*models.Workspace, error)
	GetWorkspaceByID(ctx context.Context, id int) (*models.Workspace, error)
	GetWorkspaceByPublicID(ctx context.Context, publicID string) (*models.Workspace, error)
	GetWorkspacesByOwner(ctx context.Context, ownerID string) ([]*models.Workspace, error)
	UpdateWorkspace(ctx context.Context, id int, name string, isVisible bool) error
	SetWorkspacePublic(ctx context.Context, id int, isPublic bool, publicID string) error
	DeleteWorkspace(ctx context.Context, id int) error
	LoadWorkspaceTree(ctx context.Context, ws *models.Workspace) error
}

// TodoRepository covers todo persistence
type TodoRepository interface {
	CreateTodo(ctx context.Context, workspaceID int, task, description string) (*models.Todo, error)
	GetTodoByID(ctx context.Context, id int) (*models.Todo, error)
	GetTodoWithSubtasks(ctx context.Context, id int) (*models.Todo, error)
	GetTodosByWorkspace(ctx context.Context, workspaceID int) ([]*models.Todo, error)
	UpdateTodo(ctx context.Context, id int, task, description string, isCompleted bool) error
	DeleteTodo(ctx context.Context, id int) error
	MoveTodo(ctx context.Context, id int, dir models.Direction) error
}

// SubtaskRepository covers subtask persistence
type SubtaskRepository interface {
	CreateSubtask(ctx context.Context, todoID int, name string) (*models.Subtask, error)
	GetSubtaskByID(ctx context.Context, id int) (*models.Subtask, error)
	GetSubtasksByTodo(ctx context.Context, todoID int) ([]*models.Subtask, error)
	UpdateSubtask(ctx context.Context, id int, name string, isCompleted bool) error
	DeleteSubtask(ctx context.Context, id int) error
}

// DataStore defines the unified interface for all data operations.
// It is composed of smaller, domain-specific interfaces so consumers can
// depend on only what they use.
type DataStore interface {
	WorkspaceRepository
	TodoRepository
	SubtaskRepository
}
