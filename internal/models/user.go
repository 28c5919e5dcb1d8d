package models

import "time"

// User represents a user account.
type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a server-side user session keyed by an opaque token.
type Session struct {
	Token        string    `json:"-"`
	UserID       int64     `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastActivity time.Time `json:"last_activity"`
}
