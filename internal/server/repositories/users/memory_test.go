package users

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.Name)

	// email is case-sensitive as stored
	_, err = repo.FindByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.Password = "tampered"

	again, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", again.Password)
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, &models.User{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestMemoryRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	const n = 50
	var wg sync.WaitGroup
	var ok, conflicts atomic.Int32

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{Name: fmt.Sprint(i), Email: "race@example.com"})
			switch {
			case err == nil:
				ok.Add(1)
			case err == common.ErrorAlreadyExists:
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, n-1, conflicts.Load())
}

func TestMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", Password: "h1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Name: "Bob", Email: "bob@example.com", Password: "h2"})
	require.NoError(t, err)

	pw := "h3"
	got, err := repo.Update(ctx, a.ID, models.UserUpdate{Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "h3", got.Password)
	assert.Equal(t, "Ada", got.Name)

	taken := "bob@example.com"
	_, err = repo.Update(ctx, a.ID, models.UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	moved := "lovelace@example.com"
	_, err = repo.Update(ctx, a.ID, models.UserUpdate{Email: &moved})
	require.NoError(t, err)
	_, err = repo.FindByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	found, err := repo.FindByEmail(ctx, moved)
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)

	_, err = repo.Update(ctx, "missing", models.UserUpdate{Password: &pw})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryRepository().FindByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
