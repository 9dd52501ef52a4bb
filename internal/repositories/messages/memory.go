package messages

import (
	"context"
	"sort"
	"sync"

	"github.com/faithguard/faithguard/internal/models"
)

// MemoryRepository is a slice-backed Repository used in tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *MemoryRepository) ListByItem(_ context.Context, itemID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []models.Message
	for _, m := range r.messages {
		if m.ItemID == itemID {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.Before(result[b].CreatedAt)
	})
	return result, nil
}
