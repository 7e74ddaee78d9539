package domain

import "errors"

var (
	// ErrMissingFields — a required registration field was blank after trimming.
	ErrMissingFields = errors.New("all fields are required")
	// ErrUserExists — the username is already taken.
	ErrUserExists = errors.New("username already taken")
	// ErrEmailExists — the email is already registered.
	ErrEmailExists = errors.New("email already registered")
	// ErrUserNotFound — no user with that username (or id).
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingCredentials — login submitted without username or password.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked — too many consecutive failed logins.
	ErrAccountLocked = errors.New("account temporarily locked")

	// ErrPostNotFound — no post with that id.
	ErrPostNotFound = errors.New("post not found")
	// ErrSessionNotFound — the session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
)
