package ui

import (
	"sync"

	"github.com/thenoetrevino/countwave/internal/models"
)

// Actions is every mutation the session UI can run
type Actions interface {
	TaskActions
	WorkspaceActions
}

// State is the UI state of one browser session: which modal is open, the
// models behind each modal, the sidebar, the theme and queued toasts.
type State struct {
	mu sync.Mutex

	modal   Modal
	sidebar *Sidebar
	theme   string

	// redirect is a navigation requested by a model, consumed by the transport
	redirect string

	toasts          *Toasts
	editTask        *EditTask
	createWorkspace *CreateWorkspaceForm
	share           *ShareForm
}

// Option configures a State
type Option func(*stateOptions)

type stateOptions struct {
	clock         Clock
	viewportWidth int
	theme         string
	baseURL       string
}

// WithClock sets the clock used for sidebar transitions
func WithClock(c Clock) Option {
	return func(o *stateOptions) { o.clock = c }
}

// WithViewport sets the initial viewport width
func WithViewport(width int) Option {
	return func(o *stateOptions) { o.viewportWidth = width }
}

// WithTheme sets the initial theme
func WithTheme(theme string) Option {
	return func(o *stateOptions) { o.theme = theme }
}

// WithBaseURL sets the prefix for share links
func WithBaseURL(url string) Option {
	return func(o *stateOptions) { o.baseURL = url }
}

// NewState creates the state for a new session
func NewState(acts Actions, opts ...Option) *State {
	o := stateOptions{clock: SystemClock, theme: ThemeSystem}
	for _, opt := range opts {
		opt(&o)
	}

	s := &State{
		sidebar: NewSidebar(o.clock, o.viewportWidth),
		theme:   o.theme,
		toasts:  &Toasts{},
	}
	s.editTask = NewEditTask(acts, s, s.toasts, s.dropModal)
	s.createWorkspace = NewCreateWorkspaceForm(acts, s, s.toasts, s.dropModal)
	s.share = NewShareForm(acts, s.toasts, o.baseURL)
	return s
}

// Modal returns the open modal
func (s *State) Modal() Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal
}

// OpenEditTask opens the edit sheet for todo, replacing any other modal
func (s *State) OpenEditTask(todo *models.Todo, preview bool) error {
	if err := s.closeCurrent(); err != nil {
		return err
	}
	s.editTask.Open(todo, preview)
	s.setModal(EditingTask(todo.ID))
	return nil
}

// OpenCreateWorkspace opens the new workspace dialog
func (s *State) OpenCreateWorkspace() error {
	if err := s.closeCurrent(); err != nil {
		return err
	}
	s.createWorkspace.Reset()
	s.setModal(CreatingWorkspace())
	return nil
}

// OpenProfile opens the profile modal
func (s *State) OpenProfile() error {
	if err := s.closeCurrent(); err != nil {
		return err
	}
	s.setModal(EditingProfile())
	return nil
}

// OpenShare opens the share dialog for ws
func (s *State) OpenShare(ws *models.Workspace) error {
	if err := s.closeCurrent(); err != nil {
		return err
	}
	s.share.Open(ws)
	s.setModal(SharingWorkspace(ws.ID))
	return nil
}

// CloseModal closes whatever is open. The edit sheet refuses while a
// mutation is in flight.
func (s *State) CloseModal() error {
	return s.closeCurrent()
}

func (s *State) closeCurrent() error {
	switch s.Modal().Kind() {
	case ModalEditingTask:
		if !s.editTask.Close() {
			return ErrActionPending
		}
	case ModalSharingWorkspace:
		s.share.Close()
	}
	s.dropModal()
	return nil
}

func (s *State) setModal(m Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = m
}

func (s *State) dropModal() {
	s.setModal(NoModal())
}

// Sidebar runs fn with exclusive access to the sidebar and returns the
// resulting layout.
func (s *State) Sidebar(fn func(*Sidebar)) Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		fn(s.sidebar)
	}
	return s.sidebar.Layout()
}

// Theme returns the session theme
func (s *State) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme records the theme the browser is showing
func (s *State) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

// Profile builds the profile modal view for user
func (s *State) Profile(user *models.User) ProfileView {
	return NewProfileView(user, s.Theme())
}

// Navigate implements Navigator by recording the target for the transport
func (s *State) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirect = path
	s.sidebar.RouteChanged()
}

// TakeRedirect returns and clears the pending navigation
func (s *State) TakeRedirect() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.redirect
	s.redirect = ""
	return r
}

// Toasts returns the session toast queue
func (s *State) Toasts() *Toasts { return s.toasts }

// EditTask returns the edit sheet model
func (s *State) EditTask() *EditTask { return s.editTask }

// CreateWorkspace returns the new workspace dialog model
func (s *State) CreateWorkspace() *CreateWorkspaceForm { return s.createWorkspace }

// Share returns the share dialog model
func (s *State) Share() *ShareForm { return s.share }
