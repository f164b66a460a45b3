package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/models"
	"github.com/thenoetrevino/countwave/internal/ui"
)

// uiContext is one /ui request: the user, their session state and the
// signals the browser sent.
type uiContext struct {
	w    http.ResponseWriter
	r    *http.Request
	user *models.User
	st   *ui.State
	sig  signals
}

// patch selects which regions a /ui response re-renders. Layout signals,
// toasts and any pending redirect are always sent.
type patch uint8

const (
	patchModal patch = 1 << iota
	patchForm
	patchTaskList
	patchNav
)

type uiHandler func(c *uiContext) (patch, error)

func (s *Server) registerUI(r *mux.Router) {
	post := func(path string, h uiHandler) {
		r.HandleFunc(path, s.uiRoute(h)).Methods(http.MethodPost)
	}

	post("/sidebar/down", s.uiSidebarDown)
	post("/sidebar/move", s.uiSidebarMove)
	post("/sidebar/up", s.uiSidebarUp)
	post("/sidebar/collapse", s.uiSidebarCollapse)
	post("/sidebar/reset", s.uiSidebarReset)
	post("/viewport", s.uiViewport)
	post("/theme", s.uiTheme)

	post("/modal/close", s.uiCloseModal)
	post("/profile", s.uiOpenProfile)

	post("/todos", s.uiCreateTodo)
	post("/todos/{todoId:[0-9]+}/open", s.uiOpenTodo)
	post("/todos/{todoId:[0-9]+}/toggle", s.uiToggleTodo)
	post("/todos/{todoId:[0-9]+}/move/{direction:up|down}", s.uiMoveTodo)

	post("/edit/save", s.uiSaveTodo)
	post("/edit/delete", s.uiDeleteTodo)
	post("/edit/subtasks", s.uiAddSubtask)
	post("/edit/subtasks/close", s.uiCloseSubtask)
	post("/edit/subtasks/{subtaskId:[0-9]+}/open", s.uiOpenSubtask)
	post("/edit/subtasks/{subtaskId:[0-9]+}/rename", s.uiRenameSubtask)
	post("/edit/subtasks/{subtaskId:[0-9]+}/toggle", s.uiToggleSubtask)
	post("/edit/subtasks/{subtaskId:[0-9]+}/delete", s.uiDeleteSubtask)

	post("/workspaces/new", s.uiNewWorkspace)
	post("/workspaces/create", s.uiCreateWorkspace)
	post("/workspaces/{workspaceId:[0-9]+}/share", s.uiOpenShare)
	post("/workspaces/{workspaceId:[0-9]+}/hide", s.uiHideWorkspace)
	post("/workspaces/{workspaceId:[0-9]+}/delete", s.uiDeleteWorkspace)
	post("/share/public", s.uiSetPublic)

	// preview visitors need no identity
	r.HandleFunc("/preview/close", s.handlePreviewClose).Methods(http.MethodPost)
	r.HandleFunc("/preview/{previewId}/todos/{todoId:[0-9]+}/open", s.handlePreviewOpen).Methods(http.MethodPost)
}

// uiRoute wraps a handler with identity, session and signal decoding, then sends
// the patches it asked for.
func (s *Server) uiRoute(h uiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.currentUser(w, r)
		if !ok {
			return
		}
		c := &uiContext{w: w, r: r, user: user}
		if err := datastar.ReadSignals(r, &c.sig); err != nil {
			http.Error(w, "bad signals", http.StatusBadRequest)
			return
		}
		c.st = s.sessions.get(w, r, user.ID)

		parts, err := h(c)
		if err != nil && !expectedUIError(err) {
			s.logger.Error("ui request failed", "path", r.URL.Path, "error", err)
			c.st.Toasts().Error(actions.MsgInternalError)
		}
		s.respond(c, parts)
	}
}

// expectedUIError reports errors already surfaced to the user through form
// errors, toasts or disabled controls.
func expectedUIError(err error) bool {
	var actionErr *ui.ActionError
	return errors.As(err, &actionErr) ||
		errors.Is(err, ui.ErrActionPending) ||
		errors.Is(err, ui.ErrInvalidForm) ||
		errors.Is(err, ui.ErrNothingOpen) ||
		errors.Is(err, ui.ErrSubtaskNotListed)
}

func (s *Server) respond(c *uiContext, parts patch) {
	sse := datastar.NewSSE(c.w, c.r)

	if parts&patchModal != 0 {
		if err := s.patchModal(sse, c.st, c.user); err != nil {
			s.logger.Error("modal patch failed", "error", err)
		}
	}
	if parts&patchForm != 0 {
		if f := formSignals(c.st); f != nil {
			_ = sse.MarshalAndPatchSignals(f)
		}
	}
	if parts&patchTaskList != 0 && c.sig.WorkspaceID > 0 {
		if ws, found, err := s.ownedTree(c.r.Context(), c.user, c.sig.WorkspaceID); err == nil && found {
			if html, err := s.renderTemplate("task_list", taskListVM{Workspace: ws}); err == nil {
				_ = sse.PatchElements(html, datastar.WithSelector("#task-list"), datastar.WithMode(datastar.ElementPatchModeOuter))
			}
		}
	}
	if parts&patchNav != 0 {
		if nav, err := s.nav(c.r.Context(), c.user, c.sig.WorkspaceID); err == nil {
			if html, err := s.renderTemplate("nav", nav); err == nil {
				_ = sse.PatchElements(html, datastar.WithSelector("#workspace-nav"), datastar.WithMode(datastar.ElementPatchModeOuter))
			}
		}
	}

	layout := c.st.Sidebar(nil)
	_ = sse.MarshalAndPatchSignals(layout)

	// queued toasts stay queued across a redirect and show on the next page
	if to := c.st.TakeRedirect(); to != "" {
		_ = sse.ExecuteScript(redirectScript(to))
		return
	}
	if html, err := s.renderTemplate("toasts", c.st.Toasts().Drain()); err == nil {
		_ = sse.PatchElements(html, datastar.WithSelector("#toasts"), datastar.WithMode(datastar.ElementPatchModeOuter))
	}

	// clear the transition flag once the animation has run
	if layout.IsResetting {
		var ends time.Time
		c.st.Sidebar(func(sb *ui.Sidebar) { ends = sb.AnimationEnds() })
		timer := time.NewTimer(time.Until(ends))
		defer timer.Stop()
		select {
		case <-sse.Context().Done():
		case <-timer.C:
			_ = sse.MarshalAndPatchSignals(c.st.Sidebar(nil))
		}
	}
}

func (s *Server) patchModal(sse *datastar.ServerSentEventGenerator, st *ui.State, user *models.User) error {
	html, err := s.renderTemplate("modal", s.modalView(st, user))
	if err != nil {
		return err
	}
	return sse.PatchElements(html, datastar.WithSelector("#modal"), datastar.WithMode(datastar.ElementPatchModeOuter))
}

func intVar(r *http.Request, name string) int {
	n, _ := strconv.Atoi(mux.Vars(r)[name])
	return n
}

// Sidebar

func (s *Server) uiSidebarDown(c *uiContext) (patch, error) {
	c.st.Sidebar(func(sb *ui.Sidebar) { sb.PointerDown() })
	return 0, nil
}

func (s *Server) uiSidebarMove(c *uiContext) (patch, error) {
	c.st.Sidebar(func(sb *ui.Sidebar) { sb.PointerMove(c.sig.ClientX) })
	return 0, nil
}

func (s *Server) uiSidebarUp(c *uiContext) (patch, error) {
	c.st.Sidebar(func(sb *ui.Sidebar) { sb.PointerUp() })
	return 0, nil
}

func (s *Server) uiSidebarCollapse(c *uiContext) (patch, error) {
	c.st.Sidebar(func(sb *ui.Sidebar) { sb.Collapse() })
	return 0, nil
}

func (s *Server) uiSidebarReset(c *uiContext) (patch, error) {
	c.st.Sidebar(func(sb *ui.Sidebar) { sb.ResetWidth() })
	return 0, nil
}

func (s *Server) uiViewport(c *uiContext) (patch, error) {
	c.st.Sidebar(func(sb *ui.Sidebar) { sb.SetViewport(c.sig.ViewportWidth) })
	return 0, nil
}

func (s *Server) uiTheme(c *uiContext) (patch, error) {
	c.st.SetTheme(c.sig.Theme)
	if c.st.Modal().Kind() == ui.ModalEditingProfile {
		return patchModal, nil
	}
	return 0, nil
}

// Modals

func (s *Server) uiCloseModal(c *uiContext) (patch, error) {
	return patchModal, c.st.CloseModal()
}

func (s *Server) uiOpenProfile(c *uiContext) (patch, error) {
	return patchModal, c.st.OpenProfile()
}

// Todos

func (s *Server) uiCreateTodo(c *uiContext) (patch, error) {
	res := s.app.Actions.CreateTodo(c.r.Context(), actions.CreateTodoInput{
		WorkspaceID: c.sig.WorkspaceID,
		Task:        c.sig.NewTask,
	})
	if !res.OK() {
		msg := res.FieldError("task")
		if msg == "" {
			msg = res.Error
		}
		c.st.Toasts().Error(msg)
		return 0, nil
	}
	c.st.Toasts().Success("Todo created.")
	return patchTaskList, nil
}

func (s *Server) uiOpenTodo(c *uiContext) (patch, error) {
	todo, found, err := s.ownedTodo(c.r.Context(), c.user, intVar(c.r, "todoId"))
	if err != nil {
		return 0, err
	}
	if !found {
		c.st.Toasts().Error(actions.MsgNotFound)
		return 0, nil
	}
	if err := c.st.OpenEditTask(todo, false); err != nil {
		return 0, err
	}
	return patchModal | patchForm, nil
}

func (s *Server) uiToggleTodo(c *uiContext) (patch, error) {
	todo, found, err := s.ownedTodo(c.r.Context(), c.user, intVar(c.r, "todoId"))
	if err != nil {
		return 0, err
	}
	if !found {
		c.st.Toasts().Error(actions.MsgNotFound)
		return 0, nil
	}
	done := !todo.IsCompleted
	res := s.app.Actions.UpdateTodo(c.r.Context(), actions.UpdateTodoInput{Todo: actions.TodoFields{
		ID:          todo.ID,
		WorkspaceID: todo.WorkspaceID,
		Task:        todo.Task,
		Description: todo.Description,
		IsCompleted: &done,
	}})
	if !res.OK() {
		c.st.Toasts().Error(res.Error)
	}
	return patchTaskList, nil
}

func (s *Server) uiMoveTodo(c *uiContext) (patch, error) {
	res := s.app.Actions.ReorderTodo(c.r.Context(), actions.ReorderTodoInput{
		ID:          intVar(c.r, "todoId"),
		WorkspaceID: c.sig.WorkspaceID,
		Direction:   mux.Vars(c.r)["direction"],
	})
	if !res.OK() {
		c.st.Toasts().Error(res.Error)
	}
	return patchTaskList, nil
}

// Edit task sheet

func (s *Server) uiSaveTodo(c *uiContext) (patch, error) {
	sheet := c.st.EditTask()
	sheet.SetForm(c.sig.Task, c.sig.Description)
	err := sheet.Submit(c.r.Context())
	return patchModal | patchForm | patchTaskList, err
}

func (s *Server) uiDeleteTodo(c *uiContext) (patch, error) {
	return patchModal | patchTaskList, c.st.EditTask().Delete(c.r.Context())
}

func (s *Server) uiAddSubtask(c *uiContext) (patch, error) {
	err := c.st.EditTask().AddSubtask(c.r.Context())
	return patchModal | patchForm | patchTaskList, err
}

func (s *Server) uiOpenSubtask(c *uiContext) (patch, error) {
	return patchModal | patchForm, c.st.EditTask().OpenSubtask(intVar(c.r, "subtaskId"))
}

func (s *Server) uiCloseSubtask(c *uiContext) (patch, error) {
	c.st.EditTask().CloseSubtask()
	return patchModal, nil
}

func (s *Server) uiRenameSubtask(c *uiContext) (patch, error) {
	err := c.st.EditTask().RenameSubtask(c.r.Context(), intVar(c.r, "subtaskId"), c.sig.SubtaskName)
	return patchModal | patchTaskList, err
}

func (s *Server) uiToggleSubtask(c *uiContext) (patch, error) {
	err := c.st.EditTask().ToggleSubtask(c.r.Context(), intVar(c.r, "subtaskId"))
	return patchModal | patchTaskList, err
}

func (s *Server) uiDeleteSubtask(c *uiContext) (patch, error) {
	err := c.st.EditTask().DeleteSubtask(c.r.Context(), intVar(c.r, "subtaskId"))
	return patchModal | patchTaskList, err
}

// Workspaces

func (s *Server) uiNewWorkspace(c *uiContext) (patch, error) {
	return patchModal | patchForm, c.st.OpenCreateWorkspace()
}

func (s *Server) uiCreateWorkspace(c *uiContext) (patch, error) {
	form := c.st.CreateWorkspace()
	form.SetName(c.sig.WorkspaceName)
	return patchModal, form.Submit(c.r.Context())
}

func (s *Server) uiOpenShare(c *uiContext) (patch, error) {
	ws, found, err := s.ownedTree(c.r.Context(), c.user, intVar(c.r, "workspaceId"))
	if err != nil {
		return 0, err
	}
	if !found {
		c.st.Toasts().Error(actions.MsgNotFound)
		return 0, nil
	}
	ws.Todos = nil
	return patchModal | patchForm, c.st.OpenShare(ws)
}

func (s *Server) uiSetPublic(c *uiContext) (patch, error) {
	return patchModal | patchForm, c.st.Share().SetPublic(c.r.Context(), c.sig.IsPublic)
}

func (s *Server) uiHideWorkspace(c *uiContext) (patch, error) {
	hidden := false
	res := s.app.Actions.UpdateWorkspace(c.r.Context(), actions.UpdateWorkspaceInput{
		ID:        intVar(c.r, "workspaceId"),
		IsVisible: &hidden,
	})
	if !res.OK() {
		c.st.Toasts().Error(res.Error)
		return 0, nil
	}
	c.st.Toasts().Success("Workspace hidden from the sidebar.")
	return patchNav, nil
}

func (s *Server) uiDeleteWorkspace(c *uiContext) (patch, error) {
	id := intVar(c.r, "workspaceId")
	res := s.app.Actions.DeleteWorkspace(c.r.Context(), actions.DeleteWorkspaceInput{ID: id})
	if !res.OK() {
		c.st.Toasts().Error(res.Error)
		return 0, nil
	}
	c.st.Toasts().Success("Workspace deleted.")
	if c.sig.WorkspaceID == id {
		c.st.Navigate("/")
	}
	return patchNav, nil
}
