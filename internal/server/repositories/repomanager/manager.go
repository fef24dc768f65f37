// Package repomanager vends the user and salt stores and owns their schema.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/salts"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/users"
)

// RepositoryManager hands out stores bound to a database handle. Conn is the
// default, non-transactional handle; it may be nil for backends that ignore
// the handle.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() dbx.DBTX
	Users(db dbx.DBTX) users.Repository
	Salts(db dbx.DBTX) salts.Repository
}

// Transactional is implemented by managers whose backend can run several
// store calls atomically. Stores created from tx inside fn share the
// transaction.
type Transactional interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
}
