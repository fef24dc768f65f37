// Package users declares the user store and its PostgreSQL, SQLite and
// in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/blogauth/internal/server/models"
)

// Repository persists user identity records.
//
// Lookups return common.ErrorNotFound when no user matches. Create and Update
// return common.ErrorAlreadyExists when the email is taken; the check is
// atomic with the write.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, fields models.UserUpdate) (*models.User, error)
}
