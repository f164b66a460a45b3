package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/countwave/internal/ui"
)

const (
	sessionCookie = "countwave_session"
	sessionTTL    = 12 * time.Hour
)

type session struct {
	state    *ui.State
	lastSeen time.Time
}

// sessionStore keeps per-browser UI state in memory, keyed by cookie and user
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	newState func(viewportWidth int) *ui.State
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(newState func(viewportWidth int) *ui.State) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		newState: newState,
		ttl:      sessionTTL,
		now:      time.Now,
	}
}

// get returns the UI state for the request's session, starting one (and
// setting the cookie) when the browser has none.
func (s *sessionStore) get(w http.ResponseWriter, r *http.Request, userID string) *ui.State {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	key := id + "|" + userID
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{state: s.newState(viewportHint(r))}
		s.sessions[key] = sess
	}
	sess.lastSeen = now
	return sess.state
}

func (s *sessionStore) sweepLocked(now time.Time) {
	for key, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, key)
		}
	}
}

// count returns the number of live sessions
func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// viewportHint guesses a narrow viewport from client hints so the first
// render on a phone starts collapsed.
func viewportHint(r *http.Request) int {
	if r.Header.Get("Sec-CH-UA-Mobile") == "?1" {
		return ui.MobileBreakpoint
	}
	return 0
}
