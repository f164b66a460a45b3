package web

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/countwave/internal/models"
	"github.com/thenoetrevino/countwave/internal/ui"
)

// signals is the datastar signal set shared by the page and every /ui
// request. The browser sends all of it back on each @post.
type signals struct {
	ui.Layout

	WorkspaceID   int    `json:"workspaceId"`
	ClientX       int    `json:"clientX"`
	ViewportWidth int    `json:"viewportWidth"`
	Theme         string `json:"theme"`

	// form fields
	NewTask       string `json:"newTask"`
	Task          string `json:"task"`
	Description   string `json:"description"`
	SubtaskName   string `json:"subtaskName"`
	WorkspaceName string `json:"workspaceName"`
	IsPublic      bool   `json:"isPublic"`
}

type pageVM struct {
	Title     string
	Theme     string
	User      *models.User
	Signals   signals
	StreamURL string
	Nav       navVM
	TaskList  taskListVM
	Modal     modalVM
	Toasts    []ui.Toast
}

type navVM struct {
	Workspaces []*models.Workspace
	CurrentID  int
}

type taskListVM struct {
	Workspace *models.Workspace
	Preview   bool
}

type modalVM struct {
	Kind    string
	Edit    ui.EditTaskView
	Create  ui.CreateWorkspaceView
	Share   ui.ShareView
	Profile ui.ProfileView
}

// nav lists the owner's sidebar workspaces. Hidden workspaces are left out
// unless one of them is the page being shown.
func (s *Server) nav(ctx context.Context, user *models.User, currentID int) (navVM, error) {
	all, err := s.app.WorkspaceService.ListWorkspaces(ctx, user.ID)
	if err != nil {
		return navVM{}, err
	}
	vm := navVM{CurrentID: currentID}
	for _, ws := range all {
		if ws.IsVisible || ws.ID == currentID {
			vm.Workspaces = append(vm.Workspaces, ws)
		}
	}
	return vm, nil
}

// ownedTree loads a workspace tree the user owns. Someone else's workspace is
// reported the same way as a missing one.
func (s *Server) ownedTree(ctx context.Context, user *models.User, workspaceID int) (*models.Workspace, bool, error) {
	ws, err := s.app.WorkspaceService.GetWorkspaceTree(ctx, workspaceID)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if ws.OwnerID != user.ID {
		return nil, false, nil
	}
	return ws, true, nil
}

// ownedTodo loads a todo with subtasks from a workspace the user owns
func (s *Server) ownedTodo(ctx context.Context, user *models.User, todoID int) (*models.Todo, bool, error) {
	todo, err := s.app.TodoService.GetTodo(ctx, todoID)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	ws, err := s.app.WorkspaceService.GetWorkspace(ctx, todo.WorkspaceID)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if ws.OwnerID != user.ID {
		return nil, false, nil
	}
	return todo, true, nil
}

func (s *Server) modalView(st *ui.State, user *models.User) modalVM {
	m := st.Modal()
	vm := modalVM{Kind: m.Kind().String()}
	switch m.Kind() {
	case ui.ModalEditingTask:
		vm.Edit = st.EditTask().View()
	case ui.ModalCreatingWorkspace:
		vm.Create = st.CreateWorkspace().View()
	case ui.ModalSharingWorkspace:
		vm.Share = st.Share().View()
	case ui.ModalEditingProfile:
		vm.Profile = st.Profile(user)
	}
	return vm
}

// formSignals seeds the bound inputs of the open modal
func formSignals(st *ui.State) map[string]any {
	switch st.Modal().Kind() {
	case ui.ModalEditingTask:
		v := st.EditTask().View()
		out := map[string]any{"task": v.Form.Task, "description": v.Form.Description}
		for _, sub := range v.Subtasks {
			if sub.ID == v.OpenSubtaskID {
				out["subtaskName"] = sub.Name
			}
		}
		return out
	case ui.ModalCreatingWorkspace:
		return map[string]any{"workspaceName": st.CreateWorkspace().View().Name}
	case ui.ModalSharingWorkspace:
		if ws := st.Share().View().Workspace; ws != nil {
			return map[string]any{"isPublic": ws.IsPublic}
		}
	}
	return nil
}

func dashboardPath(workspaceID int) string {
	if workspaceID <= 0 {
		return "/dashboard"
	}
	return fmt.Sprintf("/dashboard/%d", workspaceID)
}
