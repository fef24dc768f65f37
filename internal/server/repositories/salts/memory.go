package salts

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps salts in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	byUserID map[string]models.Salt
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUserID: make(map[string]models.Salt)}
}

// ErrSaltExists is returned when a second salt is created for a user.
var ErrSaltExists = errors.New("salt already exists for user")

func (r *MemoryRepository) Create(ctx context.Context, userID string, salt string) (*models.Salt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUserID[userID]; ok {
		return nil, ErrSaltExists
	}

	s := models.Salt{
		ID:        uuid.NewString(),
		UserID:    userID,
		Salt:      salt,
		CreatedAt: time.Now().UTC(),
	}
	r.byUserID[userID] = s
	return &s, nil
}

func (r *MemoryRepository) FindByUserID(ctx context.Context, userID string) (*models.Salt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byUserID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}
