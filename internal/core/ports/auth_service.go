package ports

import (
	"context"

	"github.com/boardly/boardly/internal/core/domain"
)

// CredentialVerifier checks a raw credential against stored state. The
// local-password implementation lives in core/service; other strategies
// (OAuth, etc.) would be additional implementations of this interface.
type CredentialVerifier interface {
	// Verify returns the user on success. Failures are one of
	// domain.ErrMissingCredentials, domain.ErrInvalidCredentials or
	// domain.ErrAccountLocked; unknown-username and wrong-password are
	// deliberately indistinguishable.
	Verify(ctx context.Context, username, password string) (*domain.User, error)
}

// AuthService defines account lifecycle use cases.
type AuthService interface {
	CredentialVerifier
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	UpdateProfile(ctx context.Context, username string, update domain.ProfileUpdate) (*domain.User, error)
}

// LockoutCounter tracks consecutive login failures per username so Verify
// can refuse further attempts past a threshold.
type LockoutCounter interface {
	// Failures returns the current consecutive-failure count.
	Failures(ctx context.Context, username string) (int, error)
	// RecordFailure increments the count and (re)arms its expiry window.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the count after a successful login.
	Reset(ctx context.Context, username string) error
}
