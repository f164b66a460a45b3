// Package web serves the dashboard, the public preview page and the action
// API. Interactive pieces are driven by datastar: the browser posts signals to
// /ui endpoints and the server answers with element and signal patches.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/thenoetrevino/countwave/internal/app"
	"github.com/thenoetrevino/countwave/internal/auth"
	"github.com/thenoetrevino/countwave/internal/models"
	"github.com/thenoetrevino/countwave/internal/ui"
)

//go:embed templates/*.html static/*
var assetsFS embed.FS

// Config holds the web settings that are not owned by the app container
type Config struct {
	// BaseURL prefixes share links, e.g. "https://countwave.example.com"
	BaseURL string

	// Theme is the theme new sessions start with
	Theme string
}

// Server is the HTTP front end over one App
type Server struct {
	cfg      Config
	app      *app.App
	provider auth.Provider
	tmpl     *template.Template
	sessions *sessionStore
	logger   *slog.Logger
}

// NewServer parses the embedded templates and prepares the session store
func NewServer(a *app.App, provider auth.Provider, cfg Config) (*Server, error) {
	if a == nil {
		return nil, errors.New("web: app is nil")
	}
	if provider == nil {
		provider = auth.NoneProvider{}
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if cfg.Theme == "" {
		cfg.Theme = ui.ThemeSystem
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
		"signals":  signalsJSON,
		"trim":     strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		app:      a,
		provider: provider,
		tmpl:     tmpl,
		logger:   a.Logger(),
	}
	s.sessions = newSessionStore(func(viewportWidth int) *ui.State {
		return ui.NewState(a.Actions,
			ui.WithViewport(viewportWidth),
			ui.WithTheme(cfg.Theme),
			ui.WithBaseURL(cfg.BaseURL),
		)
	})
	return s, nil
}

// Handler returns the routed handler with logging and identity middleware
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests, auth.Middleware(s.provider))
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.FileServer(http.FS(assetsFS))).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/{workspaceId:[0-9]+}", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/{workspaceId:[0-9]+}/events", s.handleDashboardEvents).Methods(http.MethodGet)

	r.HandleFunc("/preview", redirectHome).Methods(http.MethodGet)
	r.HandleFunc("/preview/", redirectHome).Methods(http.MethodGet)
	r.HandleFunc("/preview/{previewId}", s.handlePreview).Methods(http.MethodGet)

	r.HandleFunc("/api/actions", s.handleActionNames).Methods(http.MethodGet)
	r.HandleFunc("/api/actions/{name}", s.handleAction).Methods(http.MethodPost)

	s.registerUI(r.PathPrefix("/ui").Subrouter())
	return r
}

// SessionCount returns the number of live browser sessions
func (s *Server) SessionCount() int {
	return s.sessions.count()
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// currentUser returns the signed-in user, writing a 401 when there is none
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeHTMLTemplate renders fully before writing, so a failing template
// never leaves a partial page behind.
func (s *Server) writeHTMLTemplate(w http.ResponseWriter, status int, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		s.logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeHTMLTemplate(w, http.StatusNotFound, "not_found.html", pageVM{Title: "Not found", Theme: s.cfg.Theme})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// signalsJSON encodes v for a data-signals attribute
func signalsJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// statusRecorder captures the response status for request logs. It forwards
// Flush so server-sent event streams keep working behind it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
	})
}
