package domain

import "time"

// Post models a single uploaded image with its caption. OwnerID is fixed
// at creation; Picture is the opaque stored-file name returned by the
// upload store.
type Post struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Caption   string    `json:"caption"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPost is a post joined with its owner's display data, so feed and
// profile views need no second lookup.
type FeedPost struct {
	Post
	Owner Owner `json:"owner"`
}

// Owner is the subset of User shown next to a post.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}
