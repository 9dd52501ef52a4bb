package models

import "time"

// AdminSessionDuration is the lifetime of an admin session.
const AdminSessionDuration = 8 * time.Hour

// AdminSession authorizes the privileged oversight view. It is independent of
// the visitor Session: separate storage key, separate expiry rule.
type AdminSession struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether the admin session has not yet expired at now.
func (s *AdminSession) Valid(now time.Time) bool {
	if s == nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}
