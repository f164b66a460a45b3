package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/thenoetrevino/countwave/internal/events"
	"github.com/thenoetrevino/countwave/internal/models"
	todoservice "github.com/thenoetrevino/countwave/internal/services/todo"
	workspaceservice "github.com/thenoetrevino/countwave/internal/services/workspace"
	"github.com/thenoetrevino/countwave/internal/ui"
)

const keepAliveInterval = 25 * time.Second

func isNotFound(err error) bool {
	return errors.Is(err, workspaceservice.ErrWorkspaceNotFound) ||
		errors.Is(err, workspaceservice.ErrInvalidWorkspaceID) ||
		errors.Is(err, workspaceservice.ErrEmptyPublicID) ||
		errors.Is(err, todoservice.ErrTodoNotFound) ||
		errors.Is(err, todoservice.ErrInvalidTodoID)
}

func workspaceIDVar(r *http.Request) int {
	id, err := strconv.Atoi(mux.Vars(r)["workspaceId"])
	if err != nil {
		return 0
	}
	return id
}

// handleHome sends the user to their first listed workspace, or to the empty
// dashboard when they have none.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	nav, err := s.nav(r.Context(), user, 0)
	if err != nil {
		s.logger.Error("failed to list workspaces", "owner", user.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	target := "/dashboard"
	if len(nav.Workspaces) > 0 {
		target = dashboardPath(nav.Workspaces[0].ID)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	workspaceID := workspaceIDVar(r)

	var current *models.Workspace
	if workspaceID > 0 {
		ws, found, err := s.ownedTree(ctx, user, workspaceID)
		if err != nil {
			s.logger.Error("failed to load workspace", "workspace", workspaceID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			s.handleNotFound(w, r)
			return
		}
		current = ws
	}

	nav, err := s.nav(ctx, user, workspaceID)
	if err != nil {
		s.logger.Error("failed to list workspaces", "owner", user.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	st := s.sessions.get(w, r, user.ID)
	layout := st.Sidebar(func(sb *ui.Sidebar) { sb.RouteChanged() })

	title := "Dashboard"
	streamURL := ""
	if current != nil {
		title = current.Name
		streamURL = dashboardPath(current.ID) + "/events"
	}
	vm := pageVM{
		Title:     title,
		Theme:     st.Theme(),
		User:      user,
		StreamURL: streamURL,
		Nav:       nav,
		TaskList:  taskListVM{Workspace: current},
		Modal:     s.modalView(st, user),
		Toasts:    st.Toasts().Drain(),
		Signals: signals{
			Layout:      layout,
			WorkspaceID: workspaceID,
			Theme:       st.Theme(),
		},
	}
	for k, v := range formSignals(st) {
		switch k {
		case "task":
			vm.Signals.Task, _ = v.(string)
		case "description":
			vm.Signals.Description, _ = v.(string)
		case "subtaskName":
			vm.Signals.SubtaskName, _ = v.(string)
		case "workspaceName":
			vm.Signals.WorkspaceName, _ = v.(string)
		case "isPublic":
			vm.Signals.IsPublic, _ = v.(bool)
		}
	}
	s.writeHTMLTemplate(w, http.StatusOK, "dashboard.html", vm)
}

// handleDashboardEvents streams live updates for one workspace page: the task
// list, the sidebar and an open edit sheet are re-rendered after each write.
func (s *Server) handleDashboardEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	workspaceID := workspaceIDVar(r)
	if _, found, err := s.ownedTree(r.Context(), user, workspaceID); err != nil || !found {
		http.NotFound(w, r)
		return
	}
	st := s.sessions.get(w, r, user.ID)

	var ch <-chan events.Event
	if b := s.app.Broker(); b != nil {
		sub, cancel := b.SubscribeOwner(user.ID, workspaceID)
		defer cancel()
		ch = sub
	}

	sse := datastar.NewSSE(w, r)
	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev.WorkspaceID == workspaceID && ev.Type == events.EventWorkspaceDeleted {
				_ = sse.ExecuteScript(redirectScript("/"))
				return
			}
			if err := s.pushWorkspace(sse, st, user, workspaceID); err != nil {
				s.logger.Error("live refresh failed", "workspace_id", workspaceID, "error", err)
				_ = sse.ExecuteScript(`console.error("CountWave: live refresh failed")`)
			}
		}
	}
}

// pushWorkspace re-renders everything on the page that depends on stored data
func (s *Server) pushWorkspace(sse *datastar.ServerSentEventGenerator, st *ui.State, user *models.User, workspaceID int) error {
	ctx := sse.Context()

	nav, err := s.nav(ctx, user, workspaceID)
	if err != nil {
		return err
	}
	html, err := s.renderTemplate("nav", nav)
	if err != nil {
		return err
	}
	if err := sse.PatchElements(html, datastar.WithSelector("#workspace-nav"), datastar.WithMode(datastar.ElementPatchModeOuter)); err != nil {
		return err
	}

	ws, found, err := s.ownedTree(ctx, user, workspaceID)
	if err != nil {
		return err
	}
	if !found {
		return sse.ExecuteScript(redirectScript("/"))
	}
	if html, err = s.renderTemplate("task_list", taskListVM{Workspace: ws}); err != nil {
		return err
	}
	if err := sse.PatchElements(html, datastar.WithSelector("#task-list"), datastar.WithMode(datastar.ElementPatchModeOuter)); err != nil {
		return err
	}

	todoID, editing := st.Modal().TodoID()
	if !editing {
		return nil
	}
	for _, todo := range ws.Todos {
		if todo.ID == todoID {
			st.EditTask().Sync(todo)
			return s.patchModal(sse, st, user)
		}
	}
	return nil
}

func redirectScript(path string) string {
	return fmt.Sprintf("window.location.href = %q", path)
}
