// Package actions is the mutation boundary shared by the web UI, the JSON API
// and the CLI. Every action validates its input, authorizes the caller
// against the owning workspace, calls the service layer and returns a Result.
package actions

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thenoetrevino/countwave/internal/auth"
	"github.com/thenoetrevino/countwave/internal/models"
	subtaskservice "github.com/thenoetrevino/countwave/internal/services/subtask"
	todoservice "github.com/thenoetrevino/countwave/internal/services/todo"
	workspaceservice "github.com/thenoetrevino/countwave/internal/services/workspace"
)

var (
	errUnauthorized = errors.New("caller does not own the workspace")
	errNotFound     = errors.New("entity not found in workspace")
)

// Actions holds the services every action needs
type Actions struct {
	workspaces workspaceservice.Service
	todos      todoservice.Service
	subtasks   subtaskservice.Service
}

// New creates the action set
func New(workspaces workspaceservice.Service, todos todoservice.Service, subtasks subtaskservice.Service) *Actions {
	return &Actions{
		workspaces: workspaces,
		todos:      todos,
		subtasks:   subtasks,
	}
}

// handler is the typed body of one action, run after validation
type handler[In, Out any] = func(ctx context.Context, user *models.User, in In) (Out, error)

// execute runs the shared pipeline: authenticate, validate doc against the
// action schema, run fn, then map errors to messages. fallback is the message
// used for unexpected errors.
func execute[In, Out any](ctx context.Context, action string, doc any, in In, fallback string, fn handler[In, Out]) Result[Out] {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return failure[Out](MsgUnauthorized)
	}

	fields, err := validateDocument(action, doc)
	if err != nil {
		slog.Error("action validation failed", "action", action, "error", err)
		return failure[Out](MsgInternalError)
	}
	if len(fields) > 0 {
		return invalid[Out](fields)
	}

	out, err := fn(ctx, user, in)
	if err != nil {
		return mapError[Out](action, err, fallback)
	}
	return success(out)
}

// run is execute for typed Go callers: the input itself is the document
func run[In, Out any](ctx context.Context, action string, in In, fallback string, fn handler[In, Out]) Result[Out] {
	doc, err := toDocument(in)
	if err != nil {
		slog.Error("action input not encodable", "action", action, "error", err)
		return failure[Out](MsgInternalError)
	}
	return execute(ctx, action, doc, in, fallback, fn)
}

func mapError[T any](action string, err error, fallback string) Result[T] {
	switch {
	case errors.Is(err, errUnauthorized):
		return failure[T](MsgUnauthorized)

	case errors.Is(err, errNotFound),
		errors.Is(err, workspaceservice.ErrWorkspaceNotFound),
		errors.Is(err, todoservice.ErrTodoNotFound),
		errors.Is(err, todoservice.ErrWorkspaceNotFound),
		errors.Is(err, subtaskservice.ErrSubtaskNotFound),
		errors.Is(err, subtaskservice.ErrTodoNotFound):
		return failure[T](MsgNotFound)

	case errors.Is(err, models.ErrAlreadyFirst):
		return failure[T](MsgAlreadyFirst)
	case errors.Is(err, models.ErrAlreadyLast):
		return failure[T](MsgAlreadyLast)

	case errors.Is(err, todoservice.ErrEmptyTask):
		return invalid[T](map[string][]string{"task": {MsgTaskRequired}})
	case errors.Is(err, todoservice.ErrTaskTooLong):
		return invalid[T](map[string][]string{"task": {MsgTaskTooLong}})
	case errors.Is(err, todoservice.ErrDescriptionTooLong):
		return invalid[T](map[string][]string{"description": {MsgDescriptionTooLong}})
	case errors.Is(err, workspaceservice.ErrEmptyName),
		errors.Is(err, subtaskservice.ErrEmptyName):
		return invalid[T](map[string][]string{"name": {MsgNameRequired}})
	case errors.Is(err, workspaceservice.ErrNameTooLong),
		errors.Is(err, subtaskservice.ErrNameTooLong):
		return invalid[T](map[string][]string{"name": {MsgNameTooLong}})
	}

	slog.Error("action failed", "action", action, "error", err)
	return failure[T](fallback)
}

// ownedWorkspace loads a workspace and checks the caller owns it
func (a *Actions) ownedWorkspace(ctx context.Context, user *models.User, workspaceID int) (*models.Workspace, error) {
	ws, err := a.workspaces.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws.OwnerID != user.ID {
		return nil, errUnauthorized
	}
	return ws, nil
}

// ownedTodo loads a todo, checks it lives in workspaceID, and that the caller owns that workspace
func (a *Actions) ownedTodo(ctx context.Context, user *models.User, workspaceID, todoID int) (*models.Todo, error) {
	if _, err := a.ownedWorkspace(ctx, user, workspaceID); err != nil {
		return nil, err
	}
	t, err := a.todos.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if t.WorkspaceID != workspaceID {
		return nil, errNotFound
	}
	return t, nil
}

// ownedSubtask resolves a subtask through its todo to an owned workspace
func (a *Actions) ownedSubtask(ctx context.Context, user *models.User, workspaceID, subtaskID int) (*models.Subtask, error) {
	sub, err := a.subtasks.GetSubtask(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	if _, err := a.ownedTodo(ctx, user, workspaceID, sub.TodoID); err != nil {
		return nil, err
	}
	return sub, nil
}
