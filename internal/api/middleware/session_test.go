package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/boardly/boardly/internal/core/domain"
)

// stubAuthority resolves a single known token.
type stubAuthority struct {
	token    string
	username string
}

func (s *stubAuthority) Establish(context.Context, string) (string, error) {
	return s.token, nil
}

func (s *stubAuthority) Identify(_ context.Context, token string) (string, error) {
	if token == s.token {
		return s.username, nil
	}
	return "", domain.ErrSessionNotFound
}

func (s *stubAuthority) Destroy(context.Context, string) error { return nil }

func gateRequest(t *testing.T, sessions *stubAuthority, cookie *http.Cookie) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var seenUsername string
	next := func(c echo.Context) error {
		called = true
		seenUsername = Username(c)
		return c.NoContent(http.StatusOK)
	}

	if err := RequireSession(sessions)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, called, seenUsername
}

func TestRequireSession_NoCookieRedirects(t *testing.T) {
	sessions := &stubAuthority{token: "tok", username: "alice"}

	rec, called, _ := gateRequest(t, sessions, nil)

	if called {
		t.Fatalf("handler ran without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireSession_UnknownTokenRedirects(t *testing.T) {
	sessions := &stubAuthority{token: "tok", username: "alice"}

	rec, called, _ := gateRequest(t, sessions, &http.Cookie{Name: SessionCookie, Value: "forged"})

	if called {
		t.Fatalf("handler ran with an unresolvable session")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRequireSession_ValidSessionInjectsUsername(t *testing.T) {
	sessions := &stubAuthority{token: "tok", username: "alice"}

	rec, called, username := gateRequest(t, sessions, &http.Cookie{Name: SessionCookie, Value: "tok"})

	if !called {
		t.Fatalf("handler did not run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if username != "alice" {
		t.Fatalf("expected alice in context, got %q", username)
	}
}

func TestUsername_AnonymousIsEmpty(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := Username(c); got != "" {
		t.Fatalf("expected empty username, got %q", got)
	}
}
