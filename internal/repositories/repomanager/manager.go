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

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	KV(db dbx.DBTX) storage.KV
	Items(db dbx.DBTX) items.Repository
	Messages(db dbx.DBTX) messages.Repository
	Notifications(db dbx.DBTX) notifications.Repository
}
