package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boardly/boardly/internal/api/middleware"
	"github.com/boardly/boardly/internal/core/domain"
)

// fakeAuthService implements ports.AuthService with per-test behavior.
type fakeAuthService struct {
	registerFn func(username, email, password string) (*domain.User, error)
	verifyFn   func(username, password string) (*domain.User, error)
	updateFn   func(username string, update domain.ProfileUpdate) (*domain.User, error)
}

func (f *fakeAuthService) Register(_ context.Context, username, email, password string) (*domain.User, error) {
	return f.registerFn(username, email, password)
}

func (f *fakeAuthService) Verify(_ context.Context, username, password string) (*domain.User, error) {
	return f.verifyFn(username, password)
}

func (f *fakeAuthService) UpdateProfile(_ context.Context, username string, update domain.ProfileUpdate) (*domain.User, error) {
	return f.updateFn(username, update)
}

// fakeSessions implements ports.SessionAuthority and records what it did.
type fakeSessions struct {
	token       string
	establishFn func(username string) (string, error)

	established []string
	destroyed   []string
}

func (f *fakeSessions) Establish(_ context.Context, username string) (string, error) {
	f.established = append(f.established, username)
	if f.establishFn != nil {
		return f.establishFn(username)
	}
	return f.token, nil
}

func (f *fakeSessions) Identify(_ context.Context, token string) (string, error) {
	if token == f.token {
		return "alice", nil
	}
	return "", domain.ErrSessionNotFound
}

func (f *fakeSessions) Destroy(_ context.Context, token string) error {
	f.destroyed = append(f.destroyed, token)
	return nil
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func newFormContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookieValue(rec *httptest.ResponseRecorder) (string, bool) {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie.Value, true
		}
	}
	return "", false
}

func redirectedTo(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != want {
		t.Fatalf("expected redirect to %s, got %q", want, loc)
	}
}

func TestAuthHandler_Register_AutoLogin(t *testing.T) {
	auth := &fakeAuthService{
		registerFn: func(username, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "id-1", Username: username, Email: email}, nil
		},
	}
	sessions := &fakeSessions{token: "signed-token"}
	h := NewAuthHandler(auth, sessions, zerolog.Nop())

	c, rec := newFormContext(formRequest("/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@x.com"},
		"password": {"pw123"},
	}))

	if err := h.Register(c); err != nil {
		t.Fatalf("register handler errored: %v", err)
	}

	redirectedTo(t, rec, "/profile")
	if len(sessions.established) != 1 || sessions.established[0] != "alice" {
		t.Fatalf("session not established for alice: %v", sessions.established)
	}
	if value, ok := sessionCookieValue(rec); !ok || value != "signed-token" {
		t.Fatalf("session cookie not set: %q %v", value, ok)
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	auth := &fakeAuthService{
		registerFn: func(string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	sessions := &fakeSessions{}
	h := NewAuthHandler(auth, sessions, zerolog.Nop())

	c, rec := newFormContext(formRequest("/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@x.com"},
		"password": {"pw123"},
	}))

	if err := h.Register(c); err != nil {
		t.Fatalf("register handler errored: %v", err)
	}

	redirectedTo(t, rec, "/register")
	if len(sessions.established) != 0 {
		t.Fatalf("session established despite failed registration")
	}
	if _, ok := sessionCookieValue(rec); ok {
		t.Fatalf("session cookie set despite failed registration")
	}
}

func TestAuthHandler_Register_InvalidEmailRejected(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{
		registerFn: func(string, string, string) (*domain.User, error) {
			t.Fatalf("service reached with invalid form")
			return nil, nil
		},
	}, &fakeSessions{}, zerolog.Nop())

	c, rec := newFormContext(formRequest("/register", url.Values{
		"username": {"alice"},
		"email":    {"not-an-email"},
		"password": {"pw123"},
	}))

	if err := h.Register(c); err != nil {
		t.Fatalf("register handler errored: %v", err)
	}
	redirectedTo(t, rec, "/register")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &fakeAuthService{
		verifyFn: func(username, _ string) (*domain.User, error) {
			return &domain.User{ID: "id-1", Username: username}, nil
		},
	}
	sessions := &fakeSessions{token: "signed-token"}
	h := NewAuthHandler(auth, sessions, zerolog.Nop())

	c, rec := newFormContext(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"pw123"},
	}))

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler errored: %v", err)
	}

	redirectedTo(t, rec, "/board")
	if value, ok := sessionCookieValue(rec); !ok || value != "signed-token" {
		t.Fatalf("session cookie not set: %q %v", value, ok)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	auth := &fakeAuthService{
		verifyFn: func(string, string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := &fakeSessions{}
	h := NewAuthHandler(auth, sessions, zerolog.Nop())

	c, rec := newFormContext(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	}))

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler errored: %v", err)
	}

	redirectedTo(t, rec, "/login")
	if len(sessions.established) != 0 {
		t.Fatalf("session established on failed login")
	}
}

func TestAuthHandler_Login_LockedAccount(t *testing.T) {
	auth := &fakeAuthService{
		verifyFn: func(string, string) (*domain.User, error) {
			return nil, domain.ErrAccountLocked
		},
	}
	h := NewAuthHandler(auth, &fakeSessions{}, zerolog.Nop())

	c, rec := newFormContext(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"pw123"},
	}))

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler errored: %v", err)
	}
	redirectedTo(t, rec, "/login")
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := &fakeSessions{token: "signed-token"}
	h := NewAuthHandler(&fakeAuthService{}, sessions, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "signed-token"})
	c, rec := newFormContext(req)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout handler errored: %v", err)
	}

	redirectedTo(t, rec, "/login")
	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != "signed-token" {
		t.Fatalf("session not destroyed: %v", sessions.destroyed)
	}
	value, ok := sessionCookieValue(rec)
	if !ok || value != "" {
		t.Fatalf("session cookie not cleared: %q %v", value, ok)
	}
}

func TestAuthHandler_Logout_NoCookie(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewAuthHandler(&fakeAuthService{}, sessions, zerolog.Nop())

	c, rec := newFormContext(httptest.NewRequest(http.MethodGet, "/logout", nil))

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout handler errored: %v", err)
	}
	redirectedTo(t, rec, "/login")
	if len(sessions.destroyed) != 0 {
		t.Fatalf("destroy called without a cookie")
	}
}

func TestAuthHandler_Update_ReEstablishesSession(t *testing.T) {
	auth := &fakeAuthService{
		updateFn: func(username string, update domain.ProfileUpdate) (*domain.User, error) {
			if username != "alice" {
				t.Fatalf("unexpected username %q", username)
			}
			return &domain.User{ID: "id-1", Username: update.Username, Name: update.Name}, nil
		},
	}
	sessions := &fakeSessions{token: "fresh-token"}
	h := NewAuthHandler(auth, sessions, zerolog.Nop())

	c, rec := newFormContext(formRequest("/update", url.Values{
		"username": {"alicia"},
		"name":     {"Alicia"},
	}))
	c.Set("username", "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("update handler errored: %v", err)
	}

	redirectedTo(t, rec, "/profile")
	if len(sessions.established) != 1 || sessions.established[0] != "alicia" {
		t.Fatalf("session not re-established under the new username: %v", sessions.established)
	}
	if value, ok := sessionCookieValue(rec); !ok || value != "fresh-token" {
		t.Fatalf("fresh session cookie not set: %q %v", value, ok)
	}
}

func TestAuthHandler_Update_UsernameCollision(t *testing.T) {
	auth := &fakeAuthService{
		updateFn: func(string, domain.ProfileUpdate) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	sessions := &fakeSessions{}
	h := NewAuthHandler(auth, sessions, zerolog.Nop())

	c, rec := newFormContext(formRequest("/update", url.Values{
		"username": {"bob"},
	}))
	c.Set("username", "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("update handler errored: %v", err)
	}

	redirectedTo(t, rec, "/edit")
	if len(sessions.established) != 0 {
		t.Fatalf("session re-established after failed update")
	}
}

func TestLoginMessage_Wording(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrMissingCredentials, "Please enter both username and password."},
		{domain.ErrInvalidCredentials, "Invalid username or password. Please try again."},
		{domain.ErrAccountLocked, "Account temporarily locked due to too many failed attempts. Please try again later."},
		{errors.New("boom"), "Login failed. Please check your credentials and try again."},
	}
	for _, tc := range cases {
		if got := loginMessage(tc.err); got != tc.want {
			t.Fatalf("loginMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
