package models

import "time"

// ItemStatus is the case lifecycle state of a reported item.
// Transitions are one-directional: active → found → closed, or active → closed
// directly. There is no reopening.
type ItemStatus string

const (
	StatusActive ItemStatus = "active"
	StatusFound  ItemStatus = "found"
	StatusClosed ItemStatus = "closed"
)

// CanTransition reports whether the status change from → to is a legal edge.
func CanTransition(from, to ItemStatus) bool {
	switch from {
	case StatusActive:
		return to == StatusFound || to == StatusClosed
	case StatusFound:
		return to == StatusClosed
	default:
		return false
	}
}

// Item is a reported lost or found physical object and its case lifecycle.
// Items are never physically deleted; closed items leave the active feed but
// stay queryable by id.
type Item struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	Image             string     `json:"image,omitempty"`
	Category          string     `json:"category,omitempty"`
	TempleCode        string     `json:"templeCode"`
	ReporterSessionID string     `json:"reporterSessionId"`
	Status            ItemStatus `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	FoundBySessionID  *string    `json:"foundBySessionId"`
	ClosedAt          *time.Time `json:"closedAt"`
	RewardAmount      *float64   `json:"rewardAmount"`
	RewardGiven       bool       `json:"rewardGiven"`
}

// IsReporter reports whether sessionID owns this item's case.
func (i *Item) IsReporter(sessionID string) bool {
	return i != nil && sessionID != "" && i.ReporterSessionID == sessionID
}
