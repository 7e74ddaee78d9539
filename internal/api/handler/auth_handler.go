package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boardly/boardly/internal/api/flash"
	"github.com/boardly/boardly/internal/api/metrics"
	"github.com/boardly/boardly/internal/api/middleware"
	"github.com/boardly/boardly/internal/core/domain"
	"github.com/boardly/boardly/internal/core/ports"
)

// AuthHandler handles the registration, login, logout and profile-update
// form posts.
type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionAuthority
	logger   zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionAuthority, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: logger}
}

type registerForm struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type updateForm struct {
	Username string `form:"username"`
	Name     string `form:"name"`
	Bio      string `form:"bio"`
}

// Register creates an account and logs the new user straight in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true   "Username"
// @Param        email     formData  string  true   "Email"
// @Param        password  formData  string  true   "Password"
// @Success      302  "redirect to /profile, or back to /register with a flashed error"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		flash.Add(c, flash.KindError, "All fields are required.")
		return c.Redirect(http.StatusFound, "/register")
	}
	if err := c.Validate(&form); err != nil {
		flash.Add(c, flash.KindError, err.Error())
		return c.Redirect(http.StatusFound, "/register")
	}

	user, err := h.auth.Register(c.Request().Context(), form.Username, form.Email, form.Password)
	if err != nil {
		flash.Add(c, flash.KindError, registerMessage(err))
		return c.Redirect(http.StatusFound, "/register")
	}
	metrics.RegistrationsTotal.Inc()

	token, err := h.sessions.Establish(c.Request().Context(), user.Username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", user.Username).Msg("auto-login after registration failed")
		flash.Add(c, flash.KindError, "Something went wrong during login.")
		return c.Redirect(http.StatusFound, "/login")
	}
	setSessionCookie(c, token)

	flash.Add(c, flash.KindSuccess, "Welcome, "+user.Username+"!")
	return c.Redirect(http.StatusFound, "/profile")
}

func registerMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "All fields are required."
	case errors.Is(err, domain.ErrUserExists):
		return "Username is already taken. Please choose another."
	case errors.Is(err, domain.ErrEmailExists):
		return "Email is already registered. Try logging in."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// Login verifies credentials and establishes a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302  "redirect to /board, or back to /login with a flashed error"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		flash.Add(c, flash.KindError, "Please enter both username and password.")
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := h.auth.Verify(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		flash.Add(c, flash.KindError, loginMessage(err))
		return c.Redirect(http.StatusFound, "/login")
	}

	token, err := h.sessions.Establish(c.Request().Context(), user.Username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", user.Username).Msg("failed to establish session")
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		flash.Add(c, flash.KindError, "Login failed. Please check your credentials and try again.")
		return c.Redirect(http.StatusFound, "/login")
	}
	setSessionCookie(c, token)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/board")
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return "missing"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, domain.ErrAccountLocked):
		return "locked"
	default:
		return "error"
	}
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return "Please enter both username and password."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password. Please try again."
	case errors.Is(err, domain.ErrAccountLocked):
		return "Account temporarily locked due to too many failed attempts. Please try again later."
	default:
		return "Login failed. Please check your credentials and try again."
	}
}

// Logout tears the session down and clears the cookie.
//
// @Summary      Log out
// @Tags         auth
// @Success      302  "redirect to /login"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}

// Update applies a profile edit and re-establishes the session, since
// the username behind the claim may have just changed.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  false  "New username"
// @Param        name      formData  string  false  "Display name"
// @Param        bio       formData  string  false  "Bio"
// @Success      302  "redirect to /profile, or back to /edit on failure"
// @Router       /update [post]
func (h *AuthHandler) Update(c echo.Context) error {
	username := middleware.Username(c)

	var form updateForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusFound, "/edit")
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), username, domain.ProfileUpdate{
		Username: form.Username,
		Name:     form.Name,
		Bio:      form.Bio,
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("username", username).Msg("profile update failed")
		if errors.Is(err, domain.ErrUserExists) {
			flash.Add(c, flash.KindError, "Username is already taken. Please choose another.")
		}
		return c.Redirect(http.StatusFound, "/edit")
	}

	token, err := h.sessions.Establish(c.Request().Context(), user.Username)
	if err != nil {
		h.logger.Error().Err(err).Str("username", user.Username).Msg("re-login after profile update failed")
		clearSessionCookie(c)
		return c.Redirect(http.StatusFound, "/login")
	}
	setSessionCookie(c, token)

	return c.Redirect(http.StatusFound, "/profile")
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
