// Package sessions owns the visitor's temporary identity: creation on
// check-in, validity checks, expiry cleanup and the last-known temple code.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/storage"
	"github.com/google/uuid"
)

// Store manages the single visitor session for this storage scope.
// Creating a new session overwrites any prior one.
type Store struct {
	kv     storage.KV
	logger logging.Logger
	now    func() time.Time
}

func NewStore(kv storage.KV, logger logging.Logger) *Store {
	return &Store{kv: kv, logger: logger, now: time.Now}
}

// Create starts a fresh session for the temple, replacing any existing one,
// and remembers the temple code for continuity across restarts.
func (s *Store) Create(ctx context.Context, templeCode string, method models.CheckInMethod) (*models.Session, error) {
	if templeCode == "" {
		return nil, fmt.Errorf("%w: temple code is required", common.ErrorValidation)
	}

	now := s.now()
	session := &models.Session{
		ID:            "session_" + uuid.NewString(),
		TempleCode:    templeCode,
		CheckInMethod: method,
		CreatedAt:     now,
		ExpiresAt:     now.Add(models.SessionDuration),
		IsActive:      true,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeySession, data); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyTempleCode, []byte(templeCode)); err != nil {
		return nil, fmt.Errorf("failed to persist temple code: %w", err)
	}

	s.logger.Info(ctx, "session created", "temple", templeCode, "method", string(method), "expires", session.ExpiresAt)
	return session, nil
}

// Current returns the stored session if it is still valid. An expired or
// unreadable record is cleared as a side effect: the first call after expiry
// returns ErrSessionExpired, later calls return ErrNoSession.
func (s *Store) Current(ctx context.Context) (*models.Session, error) {
	data, err := s.kv.Get(ctx, storage.KeySession)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn(ctx, "discarding unreadable session record", "error", err)
		_ = s.Clear(ctx)
		return nil, common.ErrNoSession
	}

	if !session.Valid(s.now()) {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "session expired", "temple", session.TempleCode)
		return nil, common.ErrSessionExpired
	}
	return &session, nil
}

// IsValid reports whether a valid, unexpired session exists. Expiry detected
// here clears the persisted state, so validity never resurrects.
func (s *Store) IsValid(ctx context.Context) bool {
	_, err := s.Current(ctx)
	return err == nil
}

// Clear invalidates the session explicitly, removing both the session record
// and the remembered temple code.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.kv.Delete(ctx, storage.KeyTempleCode); err != nil {
		return fmt.Errorf("failed to clear temple code: %w", err)
	}
	return nil
}

// TempleCode returns the current session's temple code, falling back to the
// last persisted code so the value survives until session state rehydrates.
func (s *Store) TempleCode(ctx context.Context) string {
	if session, err := s.Current(ctx); err == nil {
		return session.TempleCode
	}
	data, err := s.kv.Get(ctx, storage.KeyTempleCode)
	if err != nil {
		return ""
	}
	return string(data)
}

// TimeUntilExpiry returns the remaining session lifetime. ok is false when
// no valid session exists.
func (s *Store) TimeUntilExpiry(ctx context.Context) (time.Duration, bool) {
	session, err := s.Current(ctx)
	if err != nil {
		return 0, false
	}
	return session.TimeUntilExpiry(s.now()), true
}
