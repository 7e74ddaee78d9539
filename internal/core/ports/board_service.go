package ports

import (
	"context"

	"github.com/boardly/boardly/internal/core/domain"
)

// ProfileView is a user with their reference sets resolved to posts.
// Pinned is nil for another user's profile (own-profile only).
type ProfileView struct {
	User   *domain.User
	Posts  []*domain.Post
	Pinned []*domain.Post
}

// BoardService defines the board use cases: post creation, the shared
// feed, profile views and the pin toggle.
type BoardService interface {
	// CreatePost stores a post owned by ownerUsername and appends its id
	// to the owner's posts set.
	CreatePost(ctx context.Context, ownerUsername, caption, picture string) (*domain.Post, error)
	// Feed returns every post with owner display data resolved.
	Feed(ctx context.Context) ([]*domain.FeedPost, error)
	// Profile returns username's own profile with posts and pinned resolved.
	Profile(ctx context.Context, username string) (*ProfileView, error)
	// PublicProfile returns username's profile with posts resolved only.
	PublicProfile(ctx context.Context, username string) (*ProfileView, error)
	// TogglePin flips postID's membership in the user's pinned set and
	// returns the resulting set. postID is not checked against existing
	// posts; a dangling reference is tolerated.
	TogglePin(ctx context.Context, username, postID string) ([]string, error)
}
