package repomanager

import (
	"context"
	"database/sql"

	"github.com/faithguard/faithguard/internal/dbx"
	"github.com/faithguard/faithguard/internal/repositories/items"
	"github.com/faithguard/faithguard/internal/repositories/messages"
	"github.com/faithguard/faithguard/internal/repositories/notifications"
	"github.com/faithguard/faithguard/internal/storage"
)

// MemoryRepositoryManager vends in-memory repositories. The same instances
// are returned on every call so state is shared across the process, which is
// what tests and the non-persistent fallback want.
type MemoryRepositoryManager struct {
	kv            *storage.Memory
	items         *items.MemoryRepository
	messages      *messages.MemoryRepository
	notifications *notifications.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		kv:            storage.NewMemory(),
		items:         items.NewMemoryRepository(),
		messages:      messages.NewMemoryRepository(),
		notifications: notifications.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) KV(dbx.DBTX) storage.KV { return m.kv }

func (m *MemoryRepositoryManager) Items(dbx.DBTX) items.Repository { return m.items }

func (m *MemoryRepositoryManager) Messages(dbx.DBTX) messages.Repository { return m.messages }

func (m *MemoryRepositoryManager) Notifications(dbx.DBTX) notifications.Repository {
	return m.notifications
}
