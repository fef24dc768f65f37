// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an identity record. Password holds the argon2id hash, never the
// plaintext.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate lists the mutable user fields. Nil fields are left unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// Empty reports whether u changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil
}
