package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/boardly/boardly/internal/core/domain"
	"github.com/boardly/boardly/internal/core/ports"
)

// SessionService implements ports.SessionAuthority. The server-side
// record lives in the session store; the cookie token is an HS256 JWT
// carrying only the session id, so tampered cookies are rejected before
// the store is consulted. Revocation is always server-side: a valid
// signature with no backing record is still anonymous.
type SessionService struct {
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
}

const defaultSessionTTL = 24 * time.Hour

func NewSessionService(store ports.SessionStore, secret string, ttl time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{store: store, secret: []byte(secret), ttl: ttl, logger: logger}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Establish creates a fresh session for username and returns its cookie
// token. Re-establishing while already authenticated replaces the claim;
// the prior record ages out via its TTL.
func (s *SessionService) Establish(ctx context.Context, username string) (string, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Save(ctx, session); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("establish session: sign token: %w", err)
	}

	s.logger.Debug().Str("username", username).Str("session_id", session.ID).Msg("session established")
	return signed, nil
}

// Identify resolves a cookie token to the username it claims.
func (s *SessionService) Identify(ctx context.Context, token string) (string, error) {
	id, err := s.sessionID(token)
	if err != nil {
		return "", domain.ErrSessionNotFound
	}

	session, err := s.store.Find(ctx, id)
	if err != nil {
		return "", err
	}
	return session.Username, nil
}

// Destroy deletes the session behind the token. An unparseable or
// already-gone token tears down to anonymous without error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	id, err := s.sessionID(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionService) sessionID(token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.SessionID == "" {
		return "", domain.ErrSessionNotFound
	}
	return claims.SessionID, nil
}
