package notifications

import (
	"fmt"

	"github.com/faithguard/faithguard/internal/models"
)

const messagePreviewLen = 50

// NewLostItemPayload builds the alert shown to other visitors when a lost
// item is reported.
func NewLostItemPayload(item models.Item) AddInput {
	return AddInput{
		Type:   models.NotifyNewLostItem,
		Title:  "Lost item reported nearby",
		Body:   fmt.Sprintf("%s was reported at %s", item.Title, item.Location),
		ItemID: item.ID,
		Data: map[string]string{
			"type":       string(models.NotifyNewLostItem),
			"templeCode": item.TempleCode,
		},
	}
}

// ItemFoundPayload builds the alert shown to the reporter when someone marks
// their item as found.
func ItemFoundPayload(item models.Item) AddInput {
	return AddInput{
		Type:   models.NotifyItemFound,
		Title:  "Someone found your item",
		Body:   fmt.Sprintf("Good news! Someone found %q", item.Title),
		ItemID: item.ID,
		Data: map[string]string{
			"type":       string(models.NotifyItemFound),
			"templeCode": item.TempleCode,
		},
	}
}

// CaseStatusChangePayload builds the alert shown to the reporter on a case
// transition.
func CaseStatusChangePayload(item models.Item, newStatus models.ItemStatus) AddInput {
	title := "Case status updated"
	switch newStatus {
	case models.StatusFound:
		title = "Your item has been marked as found"
	case models.StatusClosed:
		title = "Case closed successfully"
	}

	return AddInput{
		Type:   models.NotifyCaseStatusChange,
		Title:  title,
		Body:   fmt.Sprintf("%s status changed to %s", item.Title, newStatus),
		ItemID: item.ID,
		Data: map[string]string{
			"type":       string(models.NotifyCaseStatusChange),
			"status":     string(newStatus),
			"templeCode": item.TempleCode,
		},
	}
}

// NewMessagePayload builds the alert shown to the reporter when a message
// arrives, with the text truncated to a short preview.
func NewMessagePayload(item models.Item, msg models.Message) AddInput {
	body := msg.Text
	if runes := []rune(body); len(runes) > messagePreviewLen {
		body = string(runes[:messagePreviewLen]) + "..."
	}

	return AddInput{
		Type:   models.NotifyNewMessage,
		Title:  "New message about your item",
		Body:   body,
		ItemID: item.ID,
		Data: map[string]string{
			"type":       string(models.NotifyNewMessage),
			"messageId":  msg.ID,
			"templeCode": item.TempleCode,
		},
	}
}
