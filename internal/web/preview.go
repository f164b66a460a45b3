package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/thenoetrevino/countwave/internal/models"
	"github.com/thenoetrevino/countwave/internal/ui"
)

// previewSession keys the UI state of preview visitors. It is kept apart from
// any dashboard session the same browser has.
const previewSession = "preview"

// handlePreview renders a shared workspace read-only. Unknown ids and
// workspaces that are no longer public get the 404 page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	previewID := mux.Vars(r)["previewId"]

	ws, ok := s.loadPreview(w, r, previewID, s.handleNotFound)
	if !ok {
		return
	}

	s.writeHTMLTemplate(w, http.StatusOK, "preview.html", pageVM{
		Title:    ws.Name,
		Theme:    s.cfg.Theme,
		TaskList: taskListVM{Workspace: ws, Preview: true},
	})
}

// handlePreviewOpen opens one todo of a shared workspace in the task sheet,
// read-only.
func (s *Server) handlePreviewOpen(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.loadPreview(w, r, mux.Vars(r)["previewId"], http.NotFound)
	if !ok {
		return
	}
	todoID := intVar(r, "todoId")
	var todo *models.Todo
	for _, t := range ws.Todos {
		if t.ID == todoID {
			todo = t
			break
		}
	}
	if todo == nil {
		http.NotFound(w, r)
		return
	}

	st := s.sessions.get(w, r, previewSession)
	if err := st.OpenEditTask(todo, true); err != nil {
		s.logger.Error("failed to open preview todo", "todo_id", todoID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.sendPreviewModal(w, r, st)
}

// handlePreviewClose closes the read-only task sheet
func (s *Server) handlePreviewClose(w http.ResponseWriter, r *http.Request) {
	st := s.sessions.get(w, r, previewSession)
	if err := st.CloseModal(); err != nil {
		s.logger.Error("failed to close preview sheet", "error", err)
	}
	s.sendPreviewModal(w, r, st)
}

func (s *Server) sendPreviewModal(w http.ResponseWriter, r *http.Request, st *ui.State) {
	sse := datastar.NewSSE(w, r)
	if err := s.patchModal(sse, st, nil); err != nil {
		s.logger.Error("modal patch failed", "error", err)
	}
}

// loadPreview fetches the public workspace tree, answering with notFound when
// there is none.
func (s *Server) loadPreview(w http.ResponseWriter, r *http.Request, previewID string, notFound http.HandlerFunc) (*models.Workspace, bool) {
	ws, err := s.app.WorkspaceService.GetPreview(r.Context(), previewID)
	if err != nil {
		if isNotFound(err) {
			notFound(w, r)
			return nil, false
		}
		s.logger.Error("failed to load preview", "preview", previewID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return ws, true
}
