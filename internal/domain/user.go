package domain

import "time"

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	Name         string
	PasswordHash string
	Image        string // optional profile image URL, empty when unset
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
