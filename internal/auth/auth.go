// Package auth resolves the signed-in user for a request. Sign-in itself is
// handled by an identity provider that fronts the service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/thenoetrevino/countwave/internal/models"
)

// ErrUnauthenticated is returned when a request carries no identity
var ErrUnauthenticated = errors.New("unauthenticated")

// Modes accepted by NewProvider
const (
	ModeNone   = "none"
	ModeDev    = "dev"
	ModeHeader = "header"
)

// Headers set by the fronting identity proxy in header mode
const (
	HeaderUserID    = "X-Auth-User-Id"
	HeaderUserName  = "X-Auth-User-Name"
	HeaderUserEmail = "X-Auth-User-Email"
	HeaderUserImage = "X-Auth-User-Image"
)

// Provider resolves the user behind a request
type Provider interface {
	Authenticate(r *http.Request) (*models.User, error)
}

// NewProvider builds the provider for a configured mode
func NewProvider(mode string, devUser models.User) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeNone:
		return NoneProvider{}, nil
	case ModeDev:
		if devUser.ID == "" {
			return nil, errors.New("auth: dev mode requires a user id")
		}
		return DevProvider{User: devUser}, nil
	case ModeHeader:
		return HeaderProvider{}, nil
	default:
		return nil, fmt.Errorf("auth: invalid mode %q (expected none|dev|header)", mode)
	}
}

// NoneProvider treats every request as anonymous. Only public previews work.
type NoneProvider struct{}

// Authenticate always fails
func (NoneProvider) Authenticate(*http.Request) (*models.User, error) {
	return nil, ErrUnauthenticated
}

// DevProvider signs every request in as one fixed user, for local use.
type DevProvider struct {
	User models.User
}

// Authenticate returns a copy of the configured user
func (p DevProvider) Authenticate(*http.Request) (*models.User, error) {
	u := p.User
	return &u, nil
}

// HeaderProvider trusts identity headers written by a reverse proxy that has
// already authenticated the user. Only deploy it behind such a proxy.
type HeaderProvider struct{}

// Authenticate reads the user from the proxy headers
func (HeaderProvider) Authenticate(r *http.Request) (*models.User, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return nil, ErrUnauthenticated
	}
	return &models.User{
		ID:       id,
		Name:     strings.TrimSpace(r.Header.Get(HeaderUserName)),
		Email:    strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
		ImageURL: strings.TrimSpace(r.Header.Get(HeaderUserImage)),
	}, nil
}

type contextKey struct{}

// WithUser attaches a user to ctx
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// UserFromContext returns the user attached by WithUser or Middleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(contextKey{}).(*models.User)
	return u, ok && u != nil
}

// Middleware resolves the user once per request. Requests without an identity
// pass through anonymously; handlers decide whether that is allowed.
func Middleware(p Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, err := p.Authenticate(r); err == nil {
				r = r.WithContext(WithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}
