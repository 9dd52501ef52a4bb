package notifications

import (
	"context"
	"sort"
	"sync"

	"github.com/faithguard/faithguard/internal/models"
)

// MemoryRepository is a slice-backed Repository used in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []models.Notification
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func inScope(n models.Notification, scope Scope) bool {
	return n.SessionID == scope.SessionID && n.TempleCode == scope.TempleCode
}

func (r *MemoryRepository) Save(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *n)
	return nil
}

func (r *MemoryRepository) ListByScope(_ context.Context, scope Scope) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []models.Notification
	for _, n := range r.entries {
		if inScope(n, scope) {
			result = append(result, n)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) MarkRead(_ context.Context, scope Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id && inScope(r.entries[i], scope) {
			r.entries[i].Read = true
		}
	}
	return nil
}

func (r *MemoryRepository) MarkAllRead(_ context.Context, scope Scope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if inScope(r.entries[i], scope) {
			r.entries[i].Read = true
		}
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, scope Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, n := range r.entries {
		if n.ID == id && inScope(n, scope) {
			continue
		}
		kept = append(kept, n)
	}
	r.entries = kept
	return nil
}

func (r *MemoryRepository) DeleteByScope(_ context.Context, scope Scope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, n := range r.entries {
		if inScope(n, scope) {
			continue
		}
		kept = append(kept, n)
	}
	r.entries = kept
	return nil
}
