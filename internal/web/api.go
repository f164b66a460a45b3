package web

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/thenoetrevino/countwave/internal/actions"
	"github.com/thenoetrevino/countwave/internal/events"
)

// maxActionBody caps action payloads; the largest valid one is a todo update
const maxActionBody = 64 << 10

// handleAction runs POST /api/actions/{name}. The body is the action input
// and the response is its Result.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxActionBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": actions.MsgInvalidInput})
		return
	}

	out, err := s.app.Actions.Dispatch(r.Context(), name, body)
	if errors.Is(err, actions.ErrUnknownAction) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": actions.MsgNotFound})
		return
	}
	if err != nil {
		s.logger.Error("action dispatch failed", "action", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": actions.MsgInternalError})
		return
	}
	writeJSON(w, actionStatus(out), out)
}

func actionStatus(out actions.Outcome) int {
	if out.OK() {
		return http.StatusOK
	}
	switch out.Message() {
	case actions.MsgUnauthorized:
		return http.StatusUnauthorized
	case actions.MsgNotFound:
		return http.StatusNotFound
	case actions.MsgInvalidInput, actions.MsgAlreadyFirst, actions.MsgAlreadyLast:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleActionNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"actions": s.app.Actions.Names()})
}

// metricsResponse is the /metrics document
type metricsResponse struct {
	Events   *events.MetricsSnapshot `json:"events,omitempty"`
	Sessions int                     `json:"sessions"`
	Time     time.Time               `json:"time"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	resp := metricsResponse{Sessions: s.SessionCount(), Time: time.Now().UTC()}
	if b := s.app.Broker(); b != nil {
		snap := b.Metrics().GetSnapshot()
		resp.Events = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}
