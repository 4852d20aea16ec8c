package domain

import "time"

// UserID identifies a registered user.
type UserID uint

// User represents a registered account.
// PasswordHash is a bcrypt hash; the clear-text password never leaves
// the auth service.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	Active       bool
}
