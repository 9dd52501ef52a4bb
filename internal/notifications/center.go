// Package notifications implements the in-app notification center: a
// per-(session, temple) list of alerts with read/unread state, fed by the
// event bus. It is distinct from OS-level push notifications.
package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/repositories/notifications"
	"github.com/google/uuid"
)

// AddInput describes a notification to add. Zero fields get defaults.
type AddInput struct {
	Type   models.NotificationType
	Title  string
	Body   string
	ItemID string
	Data   map[string]string
}

// Center holds the visible notification list for the bound scope. All
// operations require a bound session; on session change the visible subset
// is reloaded, on session clear the center resets to empty.
type Center struct {
	repo   notifications.Repository
	logger logging.Logger
	now    func() time.Time

	mu        sync.Mutex
	scope     *notifications.Scope
	list      []models.Notification // most-recent-first cache of the scope
	panelOpen bool
}

func NewCenter(repo notifications.Repository, logger logging.Logger) *Center {
	return &Center{repo: repo, logger: logger, now: time.Now}
}

// Bind scopes the center to a session/temple pair and loads its entries.
func (c *Center) Bind(ctx context.Context, sessionID, templeCode string) error {
	scope := notifications.Scope{SessionID: sessionID, TempleCode: templeCode}
	list, err := c.repo.ListByScope(ctx, scope)
	if err != nil {
		return fmt.Errorf("failed to load notifications: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scope = &scope
	c.list = list
	return nil
}

// Reset empties the center and closes the panel. Called on session clear or
// expiry. Persisted entries for the old scope are left in place; scoping
// makes them invisible.
func (c *Center) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scope = nil
	c.list = nil
	c.panelOpen = false
}

// Scope returns the bound scope, or ok=false when no session is bound.
func (c *Center) Scope() (notifications.Scope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scope == nil {
		return notifications.Scope{}, false
	}
	return *c.scope, true
}

// Add stores a new unread notification under the bound scope and prepends it
// to the visible list.
func (c *Center) Add(ctx context.Context, input AddInput) (*models.Notification, error) {
	c.mu.Lock()
	scope := c.scope
	c.mu.Unlock()
	if scope == nil {
		return nil, common.ErrNoSession
	}

	if input.Type == "" {
		input.Type = models.NotifyNewLostItem
	}
	if input.Title == "" {
		input.Title = "Notification"
	}

	n := models.Notification{
		ID:         "notif_" + uuid.NewString(),
		Type:       input.Type,
		Title:      input.Title,
		Body:       input.Body,
		ItemID:     input.ItemID,
		Data:       input.Data,
		Read:       false,
		SessionID:  scope.SessionID,
		TempleCode: scope.TempleCode,
		CreatedAt:  c.now(),
	}

	if err := c.repo.Save(ctx, &n); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	c.mu.Lock()
	c.list = append([]models.Notification{n}, c.list...)
	c.mu.Unlock()

	c.logger.Debug(ctx, "notification added", "type", string(n.Type), "item", n.ItemID)
	return &n, nil
}

// MarkAsRead flags one notification as read.
func (c *Center) MarkAsRead(ctx context.Context, id string) error {
	c.mu.Lock()
	scope := c.scope
	c.mu.Unlock()
	if scope == nil {
		return common.ErrNoSession
	}

	if err := c.repo.MarkRead(ctx, *scope, id); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.list {
		if c.list[i].ID == id {
			c.list[i].Read = true
		}
	}
	c.mu.Unlock()
	return nil
}

// MarkAllAsRead flags every notification in the scope as read.
func (c *Center) MarkAllAsRead(ctx context.Context) error {
	c.mu.Lock()
	scope := c.scope
	c.mu.Unlock()
	if scope == nil {
		return common.ErrNoSession
	}

	if err := c.repo.MarkAllRead(ctx, *scope); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.list {
		c.list[i].Read = true
	}
	c.mu.Unlock()
	return nil
}

// Remove deletes one notification from the scope.
func (c *Center) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	scope := c.scope
	c.mu.Unlock()
	if scope == nil {
		return common.ErrNoSession
	}

	if err := c.repo.Delete(ctx, *scope, id); err != nil {
		return err
	}

	c.mu.Lock()
	kept := c.list[:0]
	for _, n := range c.list {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.list = kept
	c.mu.Unlock()
	return nil
}

// ClearAll deletes every notification in the scope.
func (c *Center) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	scope := c.scope
	c.mu.Unlock()
	if scope == nil {
		return common.ErrNoSession
	}

	if err := c.repo.DeleteByScope(ctx, *scope); err != nil {
		return err
	}

	c.mu.Lock()
	c.list = nil
	c.mu.Unlock()
	return nil
}

// List returns a copy of the visible notifications, most recent first.
func (c *Center) List() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.list))
	copy(out, c.list)
	return out
}

// UnreadCount is derived on every call; it is never stored.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, n := range c.list {
		if !n.Read {
			count++
		}
	}
	return count
}

// TogglePanel flips the panel open state and returns the new value.
func (c *Center) TogglePanel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelOpen = !c.panelOpen
	return c.panelOpen
}

// ClosePanel closes the panel.
func (c *Center) ClosePanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelOpen = false
}

// PanelOpen reports whether the panel is open.
func (c *Center) PanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panelOpen
}
