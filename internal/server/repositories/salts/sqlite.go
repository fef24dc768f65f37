package salts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, userID string, salt string) (*models.Salt, error) {
	s := &models.Salt{ID: uuid.NewString(), UserID: userID, Salt: salt, CreatedAt: time.Now().UTC()}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO salts (id, user_id, salt, created_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.UserID, s.Salt, s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// FindByUserID returns the oldest salt row of userID.
func (r *SQLiteRepository) FindByUserID(ctx context.Context, userID string) (*models.Salt, error) {
	query := `SELECT id, user_id, salt, created_at FROM salts WHERE user_id = ? ORDER BY created_at LIMIT 1`

	s := &models.Salt{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Salt, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
