package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/models"
)

// WorkspaceActions are the mutations behind the create and share dialogs
type WorkspaceActions interface {
	CreateWorkspace(ctx context.Context, in actions.CreateWorkspaceInput) actions.Result[*models.Workspace]
	ShareWorkspace(ctx context.Context, in actions.ShareWorkspaceInput) actions.Result[*models.Workspace]
}

// CreateWorkspaceView is a snapshot of the create dialog
type CreateWorkspaceView struct {
	Name     string
	Error    string
	Disabled bool
}

// CreateWorkspaceForm is the new workspace dialog
type CreateWorkspaceForm struct {
	mu sync.Mutex

	actions WorkspaceActions
	nav     Navigator
	toasts  *Toasts
	onClose func()

	name    string
	err     string
	pending bool
}

// NewCreateWorkspaceForm creates the dialog model
func NewCreateWorkspaceForm(acts WorkspaceActions, nav Navigator, toasts *Toasts, onClose func()) *CreateWorkspaceForm {
	if onClose == nil {
		onClose = func() {}
	}
	return &CreateWorkspaceForm{actions: acts, nav: nav, toasts: toasts, onClose: onClose}
}

// Reset prepares the dialog for a fresh open
func (f *CreateWorkspaceForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = models.DefaultWorkspaceName
	f.err = ""
}

// SetName records the typed name
func (f *CreateWorkspaceForm) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
	f.err = ""
}

// View returns a snapshot for rendering
func (f *CreateWorkspaceForm) View() CreateWorkspaceView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CreateWorkspaceView{Name: f.name, Error: f.err, Disabled: f.pending}
}

// Submit creates the workspace and navigates to it
func (f *CreateWorkspaceForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return ErrActionPending
	}
	name := strings.TrimSpace(f.name)
	f.err = ""
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		f.err = actions.MsgNameRequired
	case n > models.WorkspaceNameMaxLen:
		f.err = actions.MsgNameTooLong
	}
	if f.err != "" {
		f.mu.Unlock()
		return ErrInvalidForm
	}
	f.pending = true
	f.mu.Unlock()

	res := f.actions.CreateWorkspace(ctx, actions.CreateWorkspaceInput{Name: name})

	f.mu.Lock()
	f.pending = false
	if !res.OK() {
		f.err = res.FieldError("name")
		f.mu.Unlock()
		f.toasts.Error(res.Error)
		return &ActionError{Message: res.Error}
	}
	f.name = ""
	f.mu.Unlock()

	f.toasts.Success(fmt.Sprintf("Workspace %q created.", res.Data.Name))
	f.onClose()
	f.nav.Navigate(fmt.Sprintf("/dashboard/%d", res.Data.ID))
	return nil
}

// ShareView is a snapshot of the share dialog
type ShareView struct {
	Workspace  *models.Workspace
	PreviewURL string
	Disabled   bool
}

// ShareForm is the share dialog for one workspace
type ShareForm struct {
	mu sync.Mutex

	actions WorkspaceActions
	toasts  *Toasts
	baseURL string

	workspace *models.Workspace
	pending   bool
}

// NewShareForm creates the dialog model. baseURL prefixes preview links.
func NewShareForm(acts WorkspaceActions, toasts *Toasts, baseURL string) *ShareForm {
	return &ShareForm{actions: acts, toasts: toasts, baseURL: strings.TrimRight(baseURL, "/")}
}

// Open shows the dialog for ws
func (f *ShareForm) Open(ws *models.Workspace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workspace = ws
}

// Close hides the dialog
func (f *ShareForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workspace = nil
}

// SetPublic publishes or unpublishes the workspace preview
func (f *ShareForm) SetPublic(ctx context.Context, isPublic bool) error {
	f.mu.Lock()
	if f.workspace == nil {
		f.mu.Unlock()
		return ErrNothingOpen
	}
	if f.pending {
		f.mu.Unlock()
		return ErrActionPending
	}
	f.pending = true
	id := f.workspace.ID
	f.mu.Unlock()

	res := f.actions.ShareWorkspace(ctx, actions.ShareWorkspaceInput{ID: id, IsPublic: isPublic})

	f.mu.Lock()
	f.pending = false
	if res.OK() && f.workspace != nil && f.workspace.ID == res.Data.ID {
		f.workspace = res.Data
	}
	f.mu.Unlock()

	if !res.OK() {
		f.toasts.Error(res.Error)
		return &ActionError{Message: res.Error}
	}
	if isPublic {
		f.toasts.Success("Workspace is now public.")
	} else {
		f.toasts.Success("Workspace is now private.")
	}
	return nil
}

// View returns a snapshot for rendering
func (f *ShareForm) View() ShareView {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := ShareView{Workspace: f.workspace, Disabled: f.pending}
	if f.workspace != nil && f.workspace.IsPublic && f.workspace.PublicID != "" {
		v.PreviewURL = f.baseURL + "/preview/" + f.workspace.PublicID
	}
	return v
}
