package actions

import (
	"context"

	"github.com/thenoetrevino/countwave/internal/models"
	subtaskservice "github.com/thenoetrevino/countwave/internal/services/subtask"
)

// CreateSubTodoInput is the createSubTodo payload
type CreateSubTodoInput struct {
	WorkspaceID int    `json:"workspaceId"`
	TodoID      int    `json:"todoId"`
	Name        string `json:"name"`
}

// UpdateSubTodoInput is the updateSubTodo payload
type UpdateSubTodoInput struct {
	ID          int     `json:"id"`
	WorkspaceID int     `json:"workspaceId"`
	Name        *string `json:"name,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// DeleteSubTodoInput is the deleteSubTodo payload
type DeleteSubTodoInput struct {
	ID          int `json:"id"`
	WorkspaceID int `json:"workspaceId"`
}

// CreateSubTodo appends a subtask to a todo
func (a *Actions) CreateSubTodo(ctx context.Context, in CreateSubTodoInput) Result[*models.Subtask] {
	return run(ctx, "createSubTodo", in, MsgFailedCreate, a.createSubTodo)
}

func (a *Actions) createSubTodo(ctx context.Context, user *models.User, in CreateSubTodoInput) (*models.Subtask, error) {
	if _, err := a.ownedTodo(ctx, user, in.WorkspaceID, in.TodoID); err != nil {
		return nil, err
	}
	return a.subtasks.CreateSubtask(ctx, subtaskservice.CreateSubtaskRequest{
		TodoID: in.TodoID,
		Name:   in.Name,
	})
}

// UpdateSubTodo renames or toggles a subtask
func (a *Actions) UpdateSubTodo(ctx context.Context, in UpdateSubTodoInput) Result[*models.Subtask] {
	return run(ctx, "updateSubTodo", in, MsgFailedUpdate, a.updateSubTodo)
}

func (a *Actions) updateSubTodo(ctx context.Context, user *models.User, in UpdateSubTodoInput) (*models.Subtask, error) {
	if _, err := a.ownedSubtask(ctx, user, in.WorkspaceID, in.ID); err != nil {
		return nil, err
	}
	return a.subtasks.UpdateSubtask(ctx, subtaskservice.UpdateSubtaskRequest{
		ID:          in.ID,
		Name:        in.Name,
		IsCompleted: in.IsCompleted,
	})
}

// DeleteSubTodo deletes a subtask
func (a *Actions) DeleteSubTodo(ctx context.Context, in DeleteSubTodoInput) Result[*models.Subtask] {
	return run(ctx, "deleteSubTodo", in, MsgFailedDelete, a.deleteSubTodo)
}

func (a *Actions) deleteSubTodo(ctx context.Context, user *models.User, in DeleteSubTodoInput) (*models.Subtask, error) {
	if _, err := a.ownedSubtask(ctx, user, in.WorkspaceID, in.ID); err != nil {
		return nil, err
	}
	return a.subtasks.DeleteSubtask(ctx, in.ID)
}
