package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/countwave/internal/database"
	"github.com/thenoetrevino/countwave/internal/events"
	"github.com/thenoetrevino/countwave/internal/models"
)

// Service defines all todo-related business operations
type Service interface {
	// Read operations
	GetTodo(ctx context.Context, id int) (*models.Todo, error)
	ListTodos(ctx context.Context, workspaceID int) ([]*models.Todo, error)

	// Write operations
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int) (*models.Todo, error)
	MoveTodo(ctx context.Context, id int, dir models.Direction) error
}

// CreateTodoRequest encapsulates data for creating a todo
type CreateTodoRequest struct {
	WorkspaceID int
	Task        string
	Description string
}

// UpdateTodoRequest is the single combined update: title, description and
// completion travel together. Fields with pointers are optional - nil means
// don't update.
type UpdateTodoRequest struct {
	ID          int
	Task        *string
	Description *string
	IsCompleted *bool
}

// repository defines the data access methods needed by the todo service
type repository interface {
	database.TodoRepository
	GetWorkspaceByID(ctx context.Context, id int) (*models.Workspace, error)
}

// service implements Service interface
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new todo service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetTodo retrieves a todo with its ordered subtasks
func (s *service) GetTodo(ctx context.Context, id int) (*models.Todo, error) {
	if id <= 0 {
		return nil, ErrInvalidTodoID
	}
	t, err := s.repo.GetTodoWithSubtasks(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// ListTodos returns a workspace's todos ordered by "order"
func (s *service) ListTodos(ctx context.Context, workspaceID int) ([]*models.Todo, error) {
	if workspaceID <= 0 {
		return nil, ErrInvalidWorkspaceID
	}
	return s.repo.GetTodosByWorkspace(ctx, workspaceID)
}

// CreateTodo appends a new todo to the end of its workspace
func (s *service) CreateTodo(ctx context.Context, req CreateTodoRequest) (*models.Todo, error) {
	if req.WorkspaceID <= 0 {
		return nil, ErrInvalidWorkspaceID
	}
	task, err := ValidateTask(req.Task)
	if err != nil {
		return nil, err
	}
	description, err := ValidateDescription(req.Description)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetWorkspaceByID(ctx, req.WorkspaceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}

	t, err := s.repo.CreateTodo(ctx, req.WorkspaceID, task, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	t.Subtasks = []*models.Subtask{}

	s.publish(t.WorkspaceID)
	return t, nil
}

// UpdateTodo applies a partial update and returns the stored todo.
// Concurrent writers are last-write-wins.
func (s *service) UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*models.Todo, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidTodoID
	}

	existing, err := s.repo.GetTodoByID(ctx, req.ID)
	if err != nil {
		return nil, notFound(err)
	}

	task := existing.Task
	if req.Task != nil {
		if task, err = ValidateTask(*req.Task); err != nil {
			return nil, err
		}
	}
	description := existing.Description
	if req.Description != nil {
		if description, err = ValidateDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	isCompleted := existing.IsCompleted
	if req.IsCompleted != nil {
		isCompleted = *req.IsCompleted
	}

	if err := s.repo.UpdateTodo(ctx, req.ID, task, description, isCompleted); err != nil {
		return nil, notFound(err)
	}

	s.publish(existing.WorkspaceID)
	return s.GetTodo(ctx, req.ID)
}

// DeleteTodo deletes a todo (subtasks cascade) and returns what was deleted
// so callers can redirect to its workspace.
func (s *service) DeleteTodo(ctx context.Context, id int) (*models.Todo, error) {
	existing, err := s.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteTodo(ctx, id); err != nil {
		return nil, notFound(err)
	}

	s.publish(existing.WorkspaceID)
	return existing, nil
}

// MoveTodo swaps a todo with its neighbour
func (s *service) MoveTodo(ctx context.Context, id int, dir models.Direction) error {
	if id <= 0 {
		return ErrInvalidTodoID
	}
	existing, err := s.repo.GetTodoByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.repo.MoveTodo(ctx, id, dir); err != nil {
		return notFound(err)
	}

	s.publish(existing.WorkspaceID)
	return nil
}

func (s *service) publish(workspaceID int) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:        events.EventWorkspaceChanged,
		WorkspaceID: workspaceID,
	}, 3)
}

// ValidateTask trims and checks a todo title
func ValidateTask(raw string) (string, error) {
	task := strings.TrimSpace(raw)
	if task == "" {
		return "", ErrEmptyTask
	}
	if utf8.RuneCountInString(task) > models.TaskMaxLen {
		return "", ErrTaskTooLong
	}
	return task, nil
}

// ValidateDescription trims and checks a todo description
func ValidateDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if utf8.RuneCountInString(description) > models.DescriptionMaxLen {
		return "", ErrDescriptionTooLong
	}
	return description, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTodoNotFound
	}
	return err
}
