package items

import (
	"context"
	"sort"
	"sync"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/models"
)

// MemoryRepository is a map-backed Repository used in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Item)}
}

func (r *MemoryRepository) Save(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) ListByTemple(_ context.Context, templeCode string, includeClosed bool) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []models.Item
	for _, item := range r.items {
		if item.TempleCode != templeCode {
			continue
		}
		if !includeClosed && item.Status == models.StatusClosed {
			continue
		}
		result = append(result, item)
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *MemoryRepository) ListByReporter(_ context.Context, templeCode, sessionID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []models.Item
	for _, item := range r.items {
		if item.TempleCode == templeCode && item.ReporterSessionID == sessionID {
			result = append(result, item)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(items []models.Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})
}
