package actions

import (
	"context"

	"github.com/thenoetrevino/countwave/internal/models"
	workspaceservice "github.com/thenoetrevino/countwave/internal/services/workspace"
)

// CreateWorkspaceInput is the createWorkspace payload
type CreateWorkspaceInput struct {
	Name string `json:"name"`
}

// UpdateWorkspaceInput is the updateWorkspace payload
type UpdateWorkspaceInput struct {
	ID        int     `json:"id"`
	Name      *string `json:"name,omitempty"`
	IsVisible *bool   `json:"isVisible,omitempty"`
}

// DeleteWorkspaceInput is the deleteWorkspace payload
type DeleteWorkspaceInput struct {
	ID int `json:"id"`
}

// ShareWorkspaceInput is the shareWorkspace payload
type ShareWorkspaceInput struct {
	ID       int  `json:"id"`
	IsPublic bool `json:"isPublic"`
}

// CreateWorkspace creates a workspace owned by the caller
func (a *Actions) CreateWorkspace(ctx context.Context, in CreateWorkspaceInput) Result[*models.Workspace] {
	return run(ctx, "createWorkspace", in, MsgFailedCreate, a.createWorkspace)
}

func (a *Actions) createWorkspace(ctx context.Context, user *models.User, in CreateWorkspaceInput) (*models.Workspace, error) {
	return a.workspaces.CreateWorkspace(ctx, workspaceservice.CreateWorkspaceRequest{
		OwnerID: user.ID,
		Name:    in.Name,
	})
}

// UpdateWorkspace renames a workspace or toggles its sidebar visibility
func (a *Actions) UpdateWorkspace(ctx context.Context, in UpdateWorkspaceInput) Result[*models.Workspace] {
	return run(ctx, "updateWorkspace", in, MsgFailedUpdate, a.updateWorkspace)
}

func (a *Actions) updateWorkspace(ctx context.Context, user *models.User, in UpdateWorkspaceInput) (*models.Workspace, error) {
	if _, err := a.ownedWorkspace(ctx, user, in.ID); err != nil {
		return nil, err
	}
	return a.workspaces.UpdateWorkspace(ctx, workspaceservice.UpdateWorkspaceRequest{
		ID:        in.ID,
		Name:      in.Name,
		IsVisible: in.IsVisible,
	})
}

// DeleteWorkspace deletes a workspace with everything in it
func (a *Actions) DeleteWorkspace(ctx context.Context, in DeleteWorkspaceInput) Result[*models.Workspace] {
	return run(ctx, "deleteWorkspace", in, MsgFailedDelete, a.deleteWorkspace)
}

func (a *Actions) deleteWorkspace(ctx context.Context, user *models.User, in DeleteWorkspaceInput) (*models.Workspace, error) {
	if _, err := a.ownedWorkspace(ctx, user, in.ID); err != nil {
		return nil, err
	}
	return a.workspaces.DeleteWorkspace(ctx, in.ID)
}

// ShareWorkspace publishes or unpublishes the read-only preview
func (a *Actions) ShareWorkspace(ctx context.Context, in ShareWorkspaceInput) Result[*models.Workspace] {
	return run(ctx, "shareWorkspace", in, MsgFailedUpdate, a.shareWorkspace)
}

func (a *Actions) shareWorkspace(ctx context.Context, user *models.User, in ShareWorkspaceInput) (*models.Workspace, error) {
	if _, err := a.ownedWorkspace(ctx, user, in.ID); err != nil {
		return nil, err
	}
	return a.workspaces.SetPublic(ctx, in.ID, in.IsPublic)
}
