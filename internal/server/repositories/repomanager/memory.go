package repomanager

import (
	"context"

	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/salts"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/users"
)

// MemoryRepositoryManager serves one shared set of in-memory stores and
// ignores the db handle. It is not Transactional.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	salts *salts.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		salts: salts.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Conn() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Salts(dbx.DBTX) salts.Repository { return m.salts }
