package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/thenoetrevino/countwave/internal/database"
	"github.com/thenoetrevino/countwave/internal/events"
	"github.com/thenoetrevino/countwave/internal/models"
)

// Service defines all workspace-related business operations
type Service interface {
	// Read operations
	ListWorkspaces(ctx context.Context, ownerID string) ([]*models.Workspace, error)
	GetWorkspace(ctx context.Context, id int) (*models.Workspace, error)
	GetWorkspaceTree(ctx context.Context, id int) (*models.Workspace, error)
	GetPreview(ctx context.Context, publicID string) (*models.Workspace, error)

	// Write operations
	CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error)
	UpdateWorkspace(ctx context.Context, req UpdateWorkspaceRequest) (*models.Workspace, error)
	SetPublic(ctx context.Context, id int, isPublic bool) (*models.Workspace, error)
	DeleteWorkspace(ctx context.Context, id int) (*models.Workspace, error)
}

// CreateWorkspaceRequest encapsulates data for creating a workspace
type CreateWorkspaceRequest struct {
	OwnerID string
	Name    string
}

// UpdateWorkspaceRequest encapsulates data for updating a workspace
// Fields with pointers are optional - nil means don't update
type UpdateWorkspaceRequest struct {
	ID        int
	Name      *string
	IsVisible *bool
}

// service implements Service interface
type service struct {
	repo        database.WorkspaceRepository
	eventClient events.EventPublisher
	newPublicID func() string
}

// NewService creates a new workspace service
func NewService(repo database.WorkspaceRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
		newPublicID: uuid.NewString,
	}
}

// ListWorkspaces returns the owner's workspaces, oldest first
func (s *service) ListWorkspaces(ctx context.Context, ownerID string) ([]*models.Workspace, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}
	return s.repo.GetWorkspacesByOwner(ctx, ownerID)
}

// GetWorkspace retrieves a workspace without its todos
func (s *service) GetWorkspace(ctx context.Context, id int) (*models.Workspace, error) {
	if id <= 0 {
		return nil, ErrInvalidWorkspaceID
	}
	ws, err := s.repo.GetWorkspaceByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return ws, nil
}

// GetWorkspaceTree retrieves a workspace with ordered todos and subtasks
func (s *service) GetWorkspaceTree(ctx context.Context, id int) (*models.Workspace, error) {
	ws, err := s.GetWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.LoadWorkspaceTree(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to load workspace tree: %w", err)
	}
	return ws, nil
}

// GetPreview returns the tree of a workspace shared under publicID.
// Unknown ids and workspaces that are no longer public are both ErrWorkspaceNotFound.
func (s *service) GetPreview(ctx context.Context, publicID string) (*models.Workspace, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return nil, ErrEmptyPublicID
	}
	ws, err := s.repo.GetWorkspaceByPublicID(ctx, publicID)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.repo.LoadWorkspaceTree(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to load preview tree: %w", err)
	}
	return ws, nil
}

// CreateWorkspace creates a new private workspace
func (s *service) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error) {
	if req.OwnerID == "" {
		return nil, ErrEmptyOwner
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	ws, err := s.repo.CreateWorkspace(ctx, req.OwnerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.publish(events.EventWorkspaceChanged, ws)
	return ws, nil
}

// UpdateWorkspace renames a workspace or changes its sidebar visibility
func (s *service) UpdateWorkspace(ctx context.Context, req UpdateWorkspaceRequest) (*models.Workspace, error) {
	existing, err := s.GetWorkspace(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if req.Name != nil {
		if name, err = validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	isVisible := existing.IsVisible
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	if err := s.repo.UpdateWorkspace(ctx, req.ID, name, isVisible); err != nil {
		return nil, notFound(err)
	}

	existing.Name = name
	existing.IsVisible = isVisible
	s.publish(events.EventWorkspaceChanged, existing)
	return s.GetWorkspace(ctx, req.ID)
}

// SetPublic turns sharing on or off. The first time sharing is enabled the
// workspace gets a public id, and that id is kept for later toggles.
func (s *service) SetPublic(ctx context.Context, id int, isPublic bool) (*models.Workspace, error) {
	existing, err := s.GetWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}

	publicID := ""
	if isPublic && existing.PublicID == "" {
		publicID = s.newPublicID()
	}
	if err := s.repo.SetWorkspacePublic(ctx, id, isPublic, publicID); err != nil {
		return nil, notFound(err)
	}

	s.publish(events.EventWorkspaceChanged, existing)
	return s.GetWorkspace(ctx, id)
}

// DeleteWorkspace deletes a workspace and, by cascade, its todos and subtasks
func (s *service) DeleteWorkspace(ctx context.Context, id int) (*models.Workspace, error) {
	existing, err := s.GetWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteWorkspace(ctx, id); err != nil {
		return nil, notFound(err)
	}

	s.publish(events.EventWorkspaceDeleted, existing)
	return existing, nil
}

func (s *service) publish(eventType events.EventType, ws *models.Workspace) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:        eventType,
		WorkspaceID: ws.ID,
		OwnerID:     ws.OwnerID,
	}, 3)
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.WorkspaceNameMaxLen {
		return "", ErrNameTooLong
	}
	return name, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrWorkspaceNotFound
	}
	return err
}
