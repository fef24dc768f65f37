// Package server initializes and runs the credential service: it loads the
// stores, runs migrations, builds the token service and notifier, and serves
// gRPC until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/dmitrijs2005/blogauth/internal/server/notify"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogauth/internal/server/services"

	gs "github.com/dmitrijs2005/blogauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	credentials *services.CredentialService
	closeNotify func() error
}

// openRepositories is a seam for tests.
var openRepositories = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, *sql.DB, error) {
	if dsn == config.MemoryDSN {
		return repomanager.NewMemoryRepositoryManager(), nil, nil
	}
	if path, ok := strings.CutPrefix(dsn, config.SQLitePrefix); ok {
		db, err := repomanager.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return repomanager.NewSQLiteRepositoryManager(db), db, nil
	}
	db, err := repomanager.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return repomanager.NewPostgresRepositoryManager(db), db, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	rm, db, err := openRepositories(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	notifier, closeNotify, err := notify.New(c, logger)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("notifier init error: %w", err)
	}

	tokens := auth.NewTokenService(c, logger)
	cs := services.NewCredentialService(rm, tokens, notifier, c, logger)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		tokens:      tokens,
		credentials: cs,
		closeNotify: closeNotify,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.credentials, app.tokens)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

// Run serves until ctx is canceled or a termination signal arrives, then
// releases the database and notifier.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.shutdown(context.WithoutCancel(ctx))
}

func (app *App) shutdown(ctx context.Context) {
	if err := app.closeNotify(); err != nil {
		app.logger.Error(ctx, "notifier close error", "error", err.Error())
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}
	app.logger.Info(ctx, "App stopped")
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
