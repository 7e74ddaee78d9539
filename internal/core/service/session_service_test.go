package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardly/boardly/internal/core/domain"
)

// stubSessionStore is an in-memory ports.SessionStore.
type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session) error {
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	if session, ok := s.sessions[id]; ok {
		clone := *session
		return &clone, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func TestSessionService_EstablishIdentifyRoundTrip(t *testing.T) {
	svc := NewSessionService(newStubSessionStore(), "test-secret", time.Hour, zerolog.Nop())

	token, err := svc.Establish(context.Background(), "alice")
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	username, err := svc.Identify(context.Background(), token)
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected alice, got %q", username)
	}
}

func TestSessionService_TamperedTokenRejected(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, "test-secret", time.Hour, zerolog.Nop())

	token, err := svc.Establish(context.Background(), "alice")
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Identify(context.Background(), tampered); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("tampered token accepted: %v", err)
	}
}

func TestSessionService_WrongSecretRejected(t *testing.T) {
	store := newStubSessionStore()
	issuer := NewSessionService(store, "secret-a", time.Hour, zerolog.Nop())
	verifier := NewSessionService(store, "secret-b", time.Hour, zerolog.Nop())

	token, err := issuer.Establish(context.Background(), "alice")
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}
	if _, err := verifier.Identify(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("token signed with another secret accepted: %v", err)
	}
}

func TestSessionService_DestroyRevokes(t *testing.T) {
	svc := NewSessionService(newStubSessionStore(), "test-secret", time.Hour, zerolog.Nop())

	token, err := svc.Establish(context.Background(), "alice")
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}
	if err := svc.Destroy(context.Background(), token); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	// The signature is still valid but the record is gone.
	if _, err := svc.Identify(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("destroyed session still identifies: %v", err)
	}
}

func TestSessionService_DestroyGarbageIsNoop(t *testing.T) {
	svc := NewSessionService(newStubSessionStore(), "test-secret", time.Hour, zerolog.Nop())

	if err := svc.Destroy(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("destroy of garbage token errored: %v", err)
	}
	if err := svc.Destroy(context.Background(), ""); err != nil {
		t.Fatalf("destroy of empty token errored: %v", err)
	}
}

func TestSessionService_ReEstablishReplacesClaim(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, "test-secret", time.Hour, zerolog.Nop())

	first, err := svc.Establish(context.Background(), "alice")
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}
	second, err := svc.Establish(context.Background(), "bob")
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens")
	}

	username, err := svc.Identify(context.Background(), second)
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}
	if username != "bob" {
		t.Fatalf("expected bob, got %q", username)
	}
}
