package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardly/boardly/internal/core/domain"
	"github.com/boardly/boardly/internal/core/ports"
)

// BoardService implements post creation, the shared feed, profile views
// and the pin toggle over the user↔post reference graph.
type BoardService struct {
	users  ports.UserRepository
	posts  ports.PostRepository
	logger zerolog.Logger
}

func NewBoardService(users ports.UserRepository, posts ports.PostRepository, logger zerolog.Logger) *BoardService {
	return &BoardService{users: users, posts: posts, logger: logger}
}

// CreatePost stores the post and appends its id to the owner's posts
// set. The two writes are not transactional; a failure of the second is
// surfaced to the caller rather than swallowed, leaving the orphaned
// post visible in logs.
func (s *BoardService) CreatePost(ctx context.Context, ownerUsername, caption, picture string) (*domain.Post, error) {
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	post := &domain.Post{
		OwnerID:   owner.ID,
		Caption:   caption,
		Picture:   picture,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.posts.Insert(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: insert: %w", err)
	}

	if err := s.users.AddPost(ctx, owner.Username, created.ID); err != nil {
		s.logger.Error().Err(err).
			Str("username", owner.Username).
			Str("post_id", created.ID).
			Msg("post inserted but owner reference not saved")
		return nil, fmt.Errorf("create post: link owner: %w", err)
	}

	s.logger.Info().Str("username", owner.Username).Str("post_id", created.ID).Msg("post created")
	return created, nil
}

// Feed returns every post with its owner resolved. Owners are fetched in
// one batch; posts whose owner record is gone keep an empty Owner rather
// than dropping out of the feed.
func (s *BoardService) Feed(ctx context.Context) ([]*domain.FeedPost, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	if len(posts) == 0 {
		return []*domain.FeedPost{}, nil
	}

	seen := make(map[string]struct{}, len(posts))
	ownerIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.OwnerID]; !ok {
			seen[p.OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("feed: resolve owners: %w", err)
	}
	byID := make(map[string]*domain.User, len(owners))
	for _, u := range owners {
		byID[u.ID] = u
	}

	feed := make([]*domain.FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := &domain.FeedPost{Post: *p}
		if u, ok := byID[p.OwnerID]; ok {
			fp.Owner = domain.Owner{ID: u.ID, Username: u.Username, Name: u.Name}
		}
		feed = append(feed, fp)
	}
	return feed, nil
}

// Profile returns the user's own profile with both reference sets
// resolved. Dangling pinned ids simply resolve to nothing.
func (s *BoardService) Profile(ctx context.Context, username string) (*ports.ProfileView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.FindByIDs(ctx, user.Posts)
	if err != nil {
		return nil, fmt.Errorf("profile: resolve posts: %w", err)
	}
	pinned, err := s.posts.FindByIDs(ctx, user.Pinned)
	if err != nil {
		return nil, fmt.Errorf("profile: resolve pinned: %w", err)
	}

	return &ports.ProfileView{User: user, Posts: posts, Pinned: pinned}, nil
}

// PublicProfile returns another user's profile: posts resolved, pinned
// withheld.
func (s *BoardService) PublicProfile(ctx context.Context, username string) (*ports.ProfileView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.FindByIDs(ctx, user.Posts)
	if err != nil {
		return nil, fmt.Errorf("profile: resolve posts: %w", err)
	}

	return &ports.ProfileView{User: user, Posts: posts}, nil
}

// TogglePin flips postID's membership in the user's pinned set. The flip
// and the write happen in a single repository round trip, so concurrent
// toggles on the same user serialize at the store instead of racing a
// read-modify-write pair. postID is deliberately not validated against
// existing posts.
func (s *BoardService) TogglePin(ctx context.Context, username, postID string) ([]string, error) {
	pinned, err := s.users.TogglePin(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("username", username).Str("post_id", postID).Int("pinned", len(pinned)).Msg("pin toggled")
	return pinned, nil
}
