package users

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/server/migrations"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.SQLite)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "sqlite"))
	return db
}

func TestSQLiteRepository_CreateAndFind(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	in := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
	u, err := repo.Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Empty(t, in.ID, "input is not mutated")
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)
	assert.True(t, u.CreatedAt.Equal(byEmail.CreatedAt))

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.Name)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_DuplicateEmail(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", Password: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Name: "Other", Email: "ada@example.com", Password: "h2"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSQLiteRepository_ConcurrentCreate(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	var ok, conflict atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "race@example.com", Password: "h"})
			switch {
			case err == nil:
				ok.Add(1)
			case err == common.ErrorAlreadyExists:
				conflict.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(7), conflict.Load())
}

func TestSQLiteRepository_Update(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", Password: "old"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"})
	require.NoError(t, err)

	pw := "new"
	got, err := repo.Update(ctx, u.ID, models.UserUpdate{Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.False(t, got.UpdatedAt.Before(u.UpdatedAt))

	taken := "bob@example.com"
	_, err = repo.Update(ctx, u.ID, models.UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = repo.Update(ctx, "missing", models.UserUpdate{Password: &pw})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
