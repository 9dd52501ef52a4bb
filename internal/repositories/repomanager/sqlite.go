// Package repomanager provides a concrete RepositoryManager for the local
// SQLite store, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/faithguard/faithguard/internal/dbx"
	"github.com/faithguard/faithguard/internal/repositories/items"
	"github.com/faithguard/faithguard/internal/repositories/messages"
	"github.com/faithguard/faithguard/internal/repositories/notifications"
	"github.com/faithguard/faithguard/internal/storage"
	"github.com/faithguard/faithguard/internal/storage/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations.
type SQLiteRepositoryManager struct{}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}

// KV returns a storage.KV bound to the provided DBTX.
func (m *SQLiteRepositoryManager) KV(db dbx.DBTX) storage.KV {
	return storage.NewSQLite(db)
}

// Items returns an items.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Items(db dbx.DBTX) items.Repository {
	return items.NewSQLiteRepository(db)
}

// Messages returns a messages.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewSQLiteRepository(db)
}

// Notifications returns a notifications.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Notifications(db dbx.DBTX) notifications.Repository {
	return notifications.NewSQLiteRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
