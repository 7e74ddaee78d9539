package ports

import (
	"context"

	"github.com/boardly/boardly/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts and the
// reference sets they own (posts, pinned).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users matching ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// UpdateProfile applies the update to the user identified by username
	// and returns the record after the write. A username collision with a
	// different user fails with domain.ErrUserExists and mutates nothing.
	UpdateProfile(ctx context.Context, username string, update domain.ProfileUpdate) (*domain.User, error)
	// AddPost appends postID to the owner's posts reference set.
	AddPost(ctx context.Context, username, postID string) error
	// TogglePin atomically flips membership of postID in the user's pinned
	// set and returns the set as persisted after the flip.
	TogglePin(ctx context.Context, username, postID string) ([]string, error)
}
