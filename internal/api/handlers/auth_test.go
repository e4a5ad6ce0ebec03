package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/rohits-web03/sharevault/internal/api/services"
	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/repositories"
)

func getLogger() *log.Entry {
	l := log.New()
	l.SetLevel(log.FatalLevel)
	return log.NewEntry(l)
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return repositories.ErrUserExists
	}
	u.ID = "id-" + u.Email
	m.users[u.Email] = u
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(u *models.User) (string, error) { return "token-for-" + u.Email, nil }

func newGoogleHandler(profile *services.GoogleUser, profileErr error) (*AuthHandler, *memUsers) {
	users := &memUsers{users: map[string]*models.User{}}
	conf := &oauth2.Config{
		ClientID:    "client",
		RedirectURL: "http://localhost/auth/google/callback",
		Endpoint:    oauth2.Endpoint{AuthURL: "https://accounts.example.com/auth", TokenURL: "https://accounts.example.com/token"},
	}
	h := NewAuthHandler(users, stubTokens{}, conf, false, getLogger())
	h.googleProfile = func(context.Context, *oauth2.Config, string) (*services.GoogleUser, error) {
		return profile, profileErr
	}
	return h, users
}

// startGoogleFlow runs the login redirect and returns the state and its cookie.
func startGoogleFlow(t *testing.T, h *AuthHandler, flow string) (string, *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HandleGoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/google/login?redirect="+flow, nil))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.example.com", loc.Host)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, stateCookie, cookies[0].Name)
	assert.Equal(t, state, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	return state, cookies[0]
}

func callback(h *AuthHandler, state string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=abc&state="+url.QueryEscape(state), nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.HandleGoogleCallback(rec, req)
	return rec
}

func TestGoogle_RegisterThenLogin(t *testing.T) {
	h, users := newGoogleHandler(&services.GoogleUser{Email: "g@x.io"}, nil)

	state, cookie := startGoogleFlow(t, h, "register")
	rec := callback(h, state, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "token-for-g@x.io")

	u, err := users.FindByEmail(context.Background(), "g@x.io")
	require.NoError(t, err)
	assert.Empty(t, u.Password)

	// registering twice is refused
	state, cookie = startGoogleFlow(t, h, "register")
	rec = callback(h, state, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	state, cookie = startGoogleFlow(t, h, "login")
	rec = callback(h, state, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-for-g@x.io")
}

func TestGoogle_LoginUnknownUser(t *testing.T) {
	h, _ := newGoogleHandler(&services.GoogleUser{Email: "g@x.io"}, nil)

	state, cookie := startGoogleFlow(t, h, "")
	rec := callback(h, state, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogle_CallbackRejected(t *testing.T) {
	h, _ := newGoogleHandler(&services.GoogleUser{Email: "g@x.io"}, nil)
	state, cookie := startGoogleFlow(t, h, "login")

	t.Run("no cookie", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, callback(h, state, nil).Code)
	})
	t.Run("state mismatch", func(t *testing.T) {
		other, _ := GenerateState(map[string]string{"flow": "login"})
		assert.Equal(t, http.StatusBadRequest, callback(h, other, cookie).Code)
	})
	t.Run("exchange failure", func(t *testing.T) {
		failing, _ := newGoogleHandler(nil, errors.New("bad code"))
		assert.Equal(t, http.StatusInternalServerError, callback(failing, state, cookie).Code)
	})
}
