package models

import "time"

// Salt is the per-user hashing parameter created once at sign-up.
type Salt struct {
	ID        string
	UserID    string
	Salt      string
	CreatedAt time.Time
}
