package subtask

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

// Service defines all subtask-related business operations
type Service interface {
	GetSubtask(ctx context.Context, id int) (*models.Subtask, error)
	ListSubtasks(ctx context.Context, todoID int) ([]*models.Subtask, error)

	CreateSubtask(ctx context.Context, req CreateSubtaskRequest) (*models.Subtask, error)
	UpdateSubtask(ctx context.Context, req UpdateSubtaskRequest) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, id int) (*models.Subtask, error)
}

// CreateSubtaskRequest encapsulates data for creating a subtask.
// A blank Name becomes models.DefaultSubtaskName.
type CreateSubtaskRequest struct {
	TodoID int
	Name   string
}

// UpdateSubtaskRequest renames or toggles a subtask.
// Fields with pointers are optional - nil means don't update.
type UpdateSubtaskRequest struct {
	ID          int
	Name        *string
	IsCompleted *bool
}

// repository defines the data access methods needed by the subtask service
type repository interface {
	database.SubtaskRepository
	GetTodoByID(ctx context.Context, id int) (*models.Todo, error)
}

// service implements Service interface
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new subtask service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetSubtask retrieves a single subtask
func (s *service) GetSubtask(ctx context.Context, id int) (*models.Subtask, error) {
	if id <= 0 {
		return nil, ErrInvalidSubtaskID
	}
	sub, err := s.repo.GetSubtaskByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSubtaskNotFound)
	}
	return sub, nil
}

// ListSubtasks returns a todo's subtasks ordered by "order"
func (s *service) ListSubtasks(ctx context.Context, todoID int) ([]*models.Subtask, error) {
	if todoID <= 0 {
		return nil, ErrInvalidTodoID
	}
	return s.repo.GetSubtasksByTodo(ctx, todoID)
}

// CreateSubtask appends a subtask to the end of its todo
func (s *service) CreateSubtask(ctx context.Context, req CreateSubtaskRequest) (*models.Subtask, error) {
	if req.TodoID <= 0 {
		return nil, ErrInvalidTodoID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultSubtaskName
	}
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	parent, err := s.repo.GetTodoByID(ctx, req.TodoID)
	if err != nil {
		return nil, notFound(err, ErrTodoNotFound)
	}

	sub, err := s.repo.CreateSubtask(ctx, req.TodoID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}

	s.publish(parent.WorkspaceID)
	return sub, nil
}

// UpdateSubtask applies a partial update and returns the stored subtask
func (s *service) UpdateSubtask(ctx context.Context, req UpdateSubtaskRequest) (*models.Subtask, error) {
	existing, err := s.GetSubtask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if req.Name != nil {
		if name, err = ValidateName(*req.Name); err != nil {
			return nil, err
		}
	}
	isCompleted := existing.IsCompleted
	if req.IsCompleted != nil {
		isCompleted = *req.IsCompleted
	}

	if err := s.repo.UpdateSubtask(ctx, req.ID, name, isCompleted); err != nil {
		return nil, notFound(err, ErrSubtaskNotFound)
	}

	s.publishForTodo(ctx, existing.TodoID)
	return s.GetSubtask(ctx, req.ID)
}

// DeleteSubtask deletes a subtask and returns what was deleted
func (s *service) DeleteSubtask(ctx context.Context, id int) (*models.Subtask, error) {
	existing, err := s.GetSubtask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteSubtask(ctx, id); err != nil {
		return nil, notFound(err, ErrSubtaskNotFound)
	}

	s.publishForTodo(ctx, existing.TodoID)
	return existing, nil
}

func (s *service) publishForTodo(ctx context.Context, todoID int) {
	if s.eventClient == nil {
		return
	}
	parent, err := s.repo.GetTodoByID(ctx, todoID)
	if err != nil {
		return
	}
	s.publish(parent.WorkspaceID)
}

func (s *service) publish(workspaceID int) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:        events.EventWorkspaceChanged,
		WorkspaceID: workspaceID,
	}, 3)
}

// ValidateName trims and checks a subtask name
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.SubtaskNameMaxLen {
		return "", ErrNameTooLong
	}
	return name, nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}
