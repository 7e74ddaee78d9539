package ports

import (
	"context"

	"github.com/boardly/boardly/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// Insert persists the post and returns it with its generated id set.
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// FindAll returns every post. No ordering is guaranteed.
	FindAll(ctx context.Context) ([]*domain.Post, error)
	// FindByIDs returns the posts matching ids; dangling ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Post, error)
}
