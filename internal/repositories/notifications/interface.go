package notifications

import (
	"context"

	"github.com/faithguard/faithguard/internal/models"
)

// Scope identifies the (session, temple) pair a notification belongs to.
// Every query and mutation is bounded by a scope, so one session's writes
// can never touch another session's entries.
type Scope struct {
	SessionID  string
	TempleCode string
}

// Repository describes persistence for in-app notification-center entries.
type Repository interface {
	// Save stores a new notification under its own scope.
	Save(ctx context.Context, n *models.Notification) error

	// ListByScope returns the scope's notifications, most recent first.
	ListByScope(ctx context.Context, scope Scope) ([]models.Notification, error)

	// MarkRead flags a single notification as read. Unknown ids are a no-op.
	MarkRead(ctx context.Context, scope Scope, id string) error

	// MarkAllRead flags every notification in the scope as read.
	MarkAllRead(ctx context.Context, scope Scope) error

	// Delete removes a single notification from the scope.
	Delete(ctx context.Context, scope Scope, id string) error

	// DeleteByScope removes every notification in the scope.
	DeleteByScope(ctx context.Context, scope Scope) error
}
