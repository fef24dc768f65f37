package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	assert.Nil(t, app.db)
	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, app.repomanager)
	assert.NotNil(t, app.credentials)
	assert.NotNil(t, app.tokens)
}

func TestNewApp_DBError(t *testing.T) {
	orig := openRepositories
	openRepositories = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, *sql.DB, error) {
		return nil, nil, errors.New("connection refused")
	}
	t.Cleanup(func() { openRepositories = orig })

	c := memoryConfig()
	c.DatabaseDSN = "postgres://nowhere"
	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewApp_BadNotifier(t *testing.T) {
	c := memoryConfig()
	c.Notifier = "pigeon"
	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notifier init error")
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestNewApp_SQLite(t *testing.T) {
	c := memoryConfig()
	c.DatabaseDSN = config.SQLitePrefix + ":memory:"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	require.NotNil(t, app.db)
	assert.IsType(t, &repomanager.SQLiteRepositoryManager{}, app.repomanager)
}
