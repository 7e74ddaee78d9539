package ports

import (
	"context"

	"github.com/boardly/boardly/internal/core/domain"
)

// SessionStore persists session records keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	// Find returns domain.ErrSessionNotFound for unknown or expired ids.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionAuthority turns a verified identity into a durable per-request
// claim and back. Tokens are opaque to callers; the authority owns their
// encoding and the backing store.
type SessionAuthority interface {
	// Establish creates a session for username and returns the cookie
	// token carrying it. Calling it while already authenticated simply
	// replaces the claim.
	Establish(ctx context.Context, username string) (string, error)
	// Identify resolves a token to the username it claims, or
	// domain.ErrSessionNotFound.
	Identify(ctx context.Context, token string) (string, error)
	// Destroy tears the session down. Unknown tokens are not an error.
	Destroy(ctx context.Context, token string) error
}
