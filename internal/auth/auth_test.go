package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/models"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("", models.User{})
	require.NoError(t, err)
	assert.IsType(t, NoneProvider{}, p)

	_, err = NewProvider("dev", models.User{})
	assert.Error(t, err)

	p, err = NewProvider(" DEV ", models.User{ID: "dev"})
	require.NoError(t, err)
	assert.IsType(t, DevProvider{}, p)

	p, err = NewProvider("header", models.User{})
	require.NoError(t, err)
	assert.IsType(t, HeaderProvider{}, p)

	_, err = NewProvider("magic", models.User{})
	assert.Error(t, err)
}

func TestHeaderProvider(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := HeaderProvider{}.Authenticate(r)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	r.Header.Set(HeaderUserID, "user_1")
	r.Header.Set(HeaderUserEmail, "ada@example.com")
	u, err := HeaderProvider{}.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "user_1", u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestDevProviderReturnsCopy(t *testing.T) {
	p := DevProvider{User: models.User{ID: "dev", Name: "Dev"}}
	u, err := p.Authenticate(nil)
	require.NoError(t, err)
	u.Name = "changed"
	assert.Equal(t, "Dev", p.User.Name)
}

func TestMiddleware(t *testing.T) {
	var seen *models.User
	var ok bool
	h := Middleware(HeaderProvider{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, ok = UserFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Nil(t, seen)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "user_2")
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.True(t, ok)
	assert.Equal(t, "user_2", seen.ID)
}
