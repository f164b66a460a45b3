package actions

import (
	"context"

	"github.com/thenoetrevino/countwave/internal/models"
	todoservice "github.com/thenoetrevino/countwave/internal/services/todo"
)

// CreateTodoInput is the createTodo payload
type CreateTodoInput struct {
	WorkspaceID int    `json:"workspaceId"`
	Task        string `json:"task"`
	Description string `json:"description"`
}

// TodoFields is the todo carried by updateTodo
type TodoFields struct {
	ID          int    `json:"id"`
	WorkspaceID int    `json:"workspaceId"`
	Task        string `json:"task"`
	Description string `json:"description"`
	IsCompleted *bool  `json:"isCompleted,omitempty"`
}

// UpdateTodoInput is the updateTodo payload
type UpdateTodoInput struct {
	Todo TodoFields `json:"todo"`
}

// DeleteTodoInput is the deleteTodo payload
type DeleteTodoInput struct {
	ID          int `json:"id"`
	WorkspaceID int `json:"workspaceId"`
}

// ReorderTodoInput is the reorderTodo payload
type ReorderTodoInput struct {
	ID          int    `json:"id"`
	WorkspaceID int    `json:"workspaceId"`
	Direction   string `json:"direction"`
}

// CreateTodo appends a todo to a workspace
func (a *Actions) CreateTodo(ctx context.Context, in CreateTodoInput) Result[*models.Todo] {
	return run(ctx, "createTodo", in, MsgFailedCreate, a.createTodo)
}

func (a *Actions) createTodo(ctx context.Context, user *models.User, in CreateTodoInput) (*models.Todo, error) {
	if _, err := a.ownedWorkspace(ctx, user, in.WorkspaceID); err != nil {
		return nil, err
	}
	return a.todos.CreateTodo(ctx, todoservice.CreateTodoRequest{
		WorkspaceID: in.WorkspaceID,
		Task:        in.Task,
		Description: in.Description,
	})
}

// UpdateTodo writes title and description (and completion when given) in one call
func (a *Actions) UpdateTodo(ctx context.Context, in UpdateTodoInput) Result[*models.Todo] {
	return run(ctx, "updateTodo", in, MsgFailedUpdate, a.updateTodo)
}

func (a *Actions) updateTodo(ctx context.Context, user *models.User, in UpdateTodoInput) (*models.Todo, error) {
	if _, err := a.ownedTodo(ctx, user, in.Todo.WorkspaceID, in.Todo.ID); err != nil {
		return nil, err
	}
	return a.todos.UpdateTodo(ctx, todoservice.UpdateTodoRequest{
		ID:          in.Todo.ID,
		Task:        &in.Todo.Task,
		Description: &in.Todo.Description,
		IsCompleted: in.Todo.IsCompleted,
	})
}

// DeleteTodo deletes a todo; Data.WorkspaceID is where the caller should go next
func (a *Actions) DeleteTodo(ctx context.Context, in DeleteTodoInput) Result[*models.Todo] {
	return run(ctx, "deleteTodo", in, MsgFailedDelete, a.deleteTodo)
}

func (a *Actions) deleteTodo(ctx context.Context, user *models.User, in DeleteTodoInput) (*models.Todo, error) {
	if _, err := a.ownedTodo(ctx, user, in.WorkspaceID, in.ID); err != nil {
		return nil, err
	}
	return a.todos.DeleteTodo(ctx, in.ID)
}

// ReorderTodo moves a todo one slot up or down and returns the new ordering
func (a *Actions) ReorderTodo(ctx context.Context, in ReorderTodoInput) Result[[]*models.Todo] {
	return run(ctx, "reorderTodo", in, MsgFailedUpdate, a.reorderTodo)
}

func (a *Actions) reorderTodo(ctx context.Context, user *models.User, in ReorderTodoInput) ([]*models.Todo, error) {
	if _, err := a.ownedTodo(ctx, user, in.WorkspaceID, in.ID); err != nil {
		return nil, err
	}
	dir := models.DirectionUp
	if in.Direction == models.DirectionDown.String() {
		dir = models.DirectionDown
	}
	if err := a.todos.MoveTodo(ctx, in.ID, dir); err != nil {
		return nil, err
	}
	return a.todos.ListTodos(ctx, in.WorkspaceID)
}
