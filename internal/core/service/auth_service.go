package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/boardly/boardly/internal/core/domain"
	"github.com/boardly/boardly/internal/core/ports"
)

// AuthService implements registration, local-password verification and
// profile updates. It is the "local" ports.CredentialVerifier.
type AuthService struct {
	users            ports.UserRepository
	lockout          ports.LockoutCounter
	lockoutThreshold int
	logger           zerolog.Logger
}

const defaultLockoutThreshold = 5

func NewAuthService(users ports.UserRepository, lockout ports.LockoutCounter, lockoutThreshold int, logger zerolog.Logger) *AuthService {
	if lockoutThreshold <= 0 {
		lockoutThreshold = defaultLockoutThreshold
	}
	return &AuthService{
		users:            users,
		lockout:          lockout,
		lockoutThreshold: lockoutThreshold,
		logger:           logger,
	}
}

// Register creates a new account. Username and email are trimmed, email
// is lowercased before the uniqueness checks; the username check runs
// first so its error wins when both collide. The raw password exists
// only long enough to derive the bcrypt hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Posts:        []string{},
		Pinned:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Verify checks username/password. Unknown-username and wrong-password
// both surface as ErrInvalidCredentials so callers cannot enumerate
// accounts. Past the consecutive-failure threshold the account is
// refused with ErrAccountLocked until the window expires.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	failures, err := s.lockout.Failures(ctx, username)
	if err != nil {
		// A broken counter must not lock everyone out.
		s.logger.Warn().Err(err).Str("username", username).Msg("lockout check failed, continuing")
	} else if failures >= s.lockoutThreshold {
		return nil, domain.ErrAccountLocked
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.lockout.Reset(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset lockout counter")
	}

	return user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.lockout.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

// UpdateProfile applies a partial profile edit. A new username that
// belongs to a different user fails with ErrUserExists and nothing is
// written.
func (s *AuthService) UpdateProfile(ctx context.Context, username string, update domain.ProfileUpdate) (*domain.User, error) {
	update.Username = strings.TrimSpace(update.Username)
	if update.Username != "" && update.Username != username {
		if _, err := s.users.FindByUsername(ctx, update.Username); err == nil {
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("update profile: check username: %w", err)
		}
	}

	updated, err := s.users.UpdateProfile(ctx, username, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("new_username", updated.Username).Msg("profile updated")
	return updated, nil
}
