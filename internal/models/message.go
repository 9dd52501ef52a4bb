package models

import "time"

// SenderType classifies a message author relative to the item's case.
type SenderType string

const (
	SenderReporter SenderType = "reporter"
	SenderOther    SenderType = "other"
)

// Message is one entry in an item's append-only anonymous conversation log.
// Messages are never edited or deleted; ordering is creation-time ascending.
type Message struct {
	ID              string     `json:"id"`
	ItemID          string     `json:"itemId"`
	Text            string     `json:"text"`
	SenderSessionID string     `json:"senderSessionId"`
	SenderType      SenderType `json:"senderType"`
	CreatedAt       time.Time  `json:"createdAt"`
}
