package domain

import "time"

// User models a registered account. Posts and Pinned hold references
// (post ids) rather than embedded documents; Pinned is a set — the same
// post id never appears twice.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Posts        []string  `json:"posts"`
	Pinned       []string  `json:"pinned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPinned reports whether postID is currently in the user's pinned set.
func (u *User) HasPinned(postID string) bool {
	for _, id := range u.Pinned {
		if id == postID {
			return true
		}
	}
	return false
}

// ProfileUpdate carries the editable profile fields. An empty Username
// keeps the current one; Name and Bio are written as given.
type ProfileUpdate struct {
	Username string
	Name     string
	Bio      string
}
