package messages

import (
	"context"

	"github.com/faithguard/faithguard/internal/models"
)

// Repository describes persistence for an item's append-only conversation
// log. There are no edit or delete operations.
type Repository interface {
	// Append stores a new message.
	Append(ctx context.Context, msg *models.Message) error

	// ListByItem returns the item's messages in creation order (ascending).
	ListByItem(ctx context.Context, itemID string) ([]models.Message, error)
}
