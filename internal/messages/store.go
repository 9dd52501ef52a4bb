// Package messages implements the per-item anonymous conversation log:
// append-only, creation-time ordered, closed to new entries once the parent
// case is closed.
package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/events"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/models"
	itemsrepo "github.com/faithguard/faithguard/internal/repositories/items"
	"github.com/faithguard/faithguard/internal/repositories/messages"
	"github.com/google/uuid"
)

// Store provides the message operations for item conversations.
type Store struct {
	repo   messages.Repository
	items  itemsrepo.Repository
	bus    *events.Bus
	logger logging.Logger
	now    func() time.Time
}

func NewStore(repo messages.Repository, items itemsrepo.Repository, bus *events.Bus, logger logging.Logger) *Store {
	return &Store{repo: repo, items: items, bus: bus, logger: logger, now: time.Now}
}

// ListForItem returns the item's messages in creation order.
func (s *Store) ListForItem(ctx context.Context, itemID string) ([]models.Message, error) {
	return s.repo.ListByItem(ctx, itemID)
}

// Append validates and stores a new message. Empty (after trimming) text is
// rejected, as is any message on a closed case.
func (s *Store) Append(ctx context.Context, itemID, text, senderSessionID string, senderType models.SenderType) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: message text is required", common.ErrorValidation)
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == models.StatusClosed {
		return nil, common.ErrItemClosed
	}

	msg := models.Message{
		ID:              "msg_" + uuid.NewString(),
		ItemID:          itemID,
		Text:            trimmed,
		SenderSessionID: senderSessionID,
		SenderType:      senderType,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Append(ctx, &msg); err != nil {
		return nil, fmt.Errorf("failed to add message: %w", err)
	}

	s.logger.Debug(ctx, "message appended", "item", itemID, "sender", string(senderType))
	s.bus.Publish(events.MessageAdded{Item: *item, Message: msg})

	return &msg, nil
}
