package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardly/boardly/internal/api/flash"
	"github.com/boardly/boardly/internal/core/domain"
)

// PageHandler serves the anonymous-accessible pages: landing, login
// form and register form.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageData struct {
	Title       string
	CurrentPage string
	Messages    []domain.Flash
}

// Landing renders the home page.
func (h *PageHandler) Landing(c echo.Context) error {
	return c.Render(http.StatusOK, "index", pageData{
		Title:       "Boardly - Pin Your Inspiration",
		CurrentPage: "Home",
	})
}

// LoginPage renders the login form with any flashed messages.
func (h *PageHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", pageData{
		Title:       "Login - Boardly",
		CurrentPage: "Login",
		Messages:    flash.Pop(c),
	})
}

// RegisterPage renders the register form with any flashed messages.
func (h *PageHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", pageData{
		Title:       "Register - Boardly",
		CurrentPage: "Register",
		Messages:    flash.Pop(c),
	})
}
