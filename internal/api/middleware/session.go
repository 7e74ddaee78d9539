package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardly/boardly/internal/core/ports"
)

// SessionCookie is the name of the login cookie carrying the signed
// session token.
const SessionCookie = "boardly_session"

// usernameKey is the echo context key the gate stores the authenticated
// username under.
const usernameKey = "username"

// RequireSession is the authorization gate for protected pages. A
// request without a resolvable session is redirected to /login before
// any handler logic runs; otherwise the session's username is injected
// into the request context.
func RequireSession(sessions ports.SessionAuthority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			username, err := sessions.Identify(c.Request().Context(), cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(usernameKey, username)
			return next(c)
		}
	}
}

// Username returns the identity injected by RequireSession, or "" when
// the request is anonymous.
func Username(c echo.Context) string {
	name, _ := c.Get(usernameKey).(string)
	return name
}
