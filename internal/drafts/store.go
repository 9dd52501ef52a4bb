// Package drafts persists the in-progress lost-item report so a half-typed
// form survives a reload. Saved on every change, cleared on submit.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/storage"
)

// Store persists the single report draft for this storage scope.
type Store struct {
	kv  storage.KV
	now func() time.Time
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Save stores the draft, stamping SavedAt.
func (s *Store) Save(ctx context.Context, draft models.Draft) error {
	draft.SavedAt = s.now()
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyReportDraft, data); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the stored draft, or common.ErrorNotFound if none exists. An
// unreadable record is discarded and reported as not found.
func (s *Store) Load(ctx context.Context) (*models.Draft, error) {
	data, err := s.kv.Get(ctx, storage.KeyReportDraft)
	if err != nil {
		return nil, err
	}
	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		_ = s.Clear(ctx)
		return nil, common.ErrorNotFound
	}
	return &draft, nil
}

// Clear removes the draft. Called after a successful submission.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeyReportDraft); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Exists reports whether a draft is stored.
func (s *Store) Exists(ctx context.Context) bool {
	_, err := s.kv.Get(ctx, storage.KeyReportDraft)
	return !errors.Is(err, common.ErrorNotFound) && err == nil
}
