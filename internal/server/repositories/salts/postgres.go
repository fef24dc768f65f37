package salts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
)

// PostgresRepository stores salts over dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, salt string) (*models.Salt, error) {
	query := `
		INSERT INTO salts (user_id, salt)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	s := &models.Salt{UserID: userID, Salt: salt}
	if err := r.db.QueryRowContext(ctx, query, userID, salt).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// FindByUserID returns the oldest salt row of userID.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Salt, error) {
	query := `
		SELECT id, user_id, salt, created_at
		FROM salts
		WHERE user_id = $1
		ORDER BY created_at
		LIMIT 1
	`
	s := &models.Salt{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Salt, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
