// Package salts declares the per-user salt store and its PostgreSQL, SQLite
// and in-memory implementations. Salts are immutable: there is no update or
// delete.
package salts

import (
	"context"

	"github.com/dmitrijs2005/blogauth/internal/server/models"
)

// Repository persists one salt per user.
type Repository interface {
	// Create stores salt for userID.
	Create(ctx context.Context, userID string, salt string) (*models.Salt, error)

	// FindByUserID returns the salt of userID, or common.ErrorNotFound.
	FindByUserID(ctx context.Context, userID string) (*models.Salt, error)
}
