package domain

import "time"

// Session is the server-side record behind a login cookie. Username is
// the identity the request acts as; absence of a valid session means
// anonymous.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Flash is a one-shot message queued for the next rendered page.
type Flash struct {
	Kind    string `json:"kind"` // "error" or "success"
	Message string `json:"message"`
}
