package models

import "time"

// NotificationType classifies an in-app notification.
type NotificationType string

const (
	NotifyNewLostItem      NotificationType = "new-lost-item"
	NotifyItemFound        NotificationType = "item-found"
	NotifyCaseStatusChange NotificationType = "case-status-change"
	NotifyNewMessage       NotificationType = "new-message"
)

// Notification is one entry in the in-app notification center. Each
// notification belongs to exactly one (SessionID, TempleCode) pair and is
// only ever visible when queried under that pair.
type Notification struct {
	ID         string            `json:"id"`
	Type       NotificationType  `json:"type"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	ItemID     string            `json:"itemId,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
	Read       bool              `json:"read"`
	SessionID  string            `json:"sessionId"`
	TempleCode string            `json:"templeCode"`
	CreatedAt  time.Time         `json:"createdAt"`
}
