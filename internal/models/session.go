// Package models defines the FaithGuard entity records: visitor sessions,
// admin sessions, reported items, conversation messages, notifications and
// report drafts. All records are plain values serialized as JSON.
package models

import "time"

// CheckInMethod says how the visitor entered the temple code.
type CheckInMethod string

const (
	CheckInQR   CheckInMethod = "qr"
	CheckInCode CheckInMethod = "code"
)

// SessionDuration is the lifetime of a visitor session.
const SessionDuration = 4 * time.Hour

// Session is a temporary, expiring, anonymous identity scoping a visitor's
// actions to one temple. Exactly one session is active per storage scope;
// creating a new one overwrites the old.
type Session struct {
	ID            string        `json:"id"`
	TempleCode    string        `json:"templeCode"`
	CheckInMethod CheckInMethod `json:"checkInMethod"`
	CreatedAt     time.Time     `json:"createdAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	IsActive      bool          `json:"isActive"`
}

// Valid reports whether the session is active and not yet expired at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil {
		return false
	}
	return s.IsActive && now.Before(s.ExpiresAt)
}

// TimeUntilExpiry returns the remaining lifetime, clamped at zero.
func (s *Session) TimeUntilExpiry(now time.Time) time.Duration {
	if s == nil {
		return 0
	}
	d := s.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
