// Package flash implements one-shot messages carried in a short-lived
// cookie: queued on a redirect, drained by the next rendered page. A
// cookie keeps the queue working for anonymous requests (login and
// register errors fire before any session exists).
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardly/boardly/internal/core/domain"
)

const cookieName = "boardly_flash"

// Kinds used across the handlers.
const (
	KindError   = "error"
	KindSuccess = "success"
)

// Add queues a message for the next rendered page.
func Add(c echo.Context, kind, message string) {
	msgs := peek(c)
	msgs = append(msgs, domain.Flash{Kind: kind, Message: message})
	write(c, msgs)
}

// Pop drains and returns the queued messages, clearing the cookie.
func Pop(c echo.Context) []domain.Flash {
	msgs := peek(c)
	if len(msgs) > 0 {
		expire(c)
	}
	return msgs
}

func peek(c echo.Context) []domain.Flash {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msgs []domain.Flash
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}

func write(c echo.Context, msgs []domain.Flash) {
	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func expire(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
