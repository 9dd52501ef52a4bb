// Package common defines shared sentinel errors used across FaithGuard
// stores and services. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no active session")

	// Admin auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminTokenInvalid  = errors.New("invalid admin token")

	// Item case lifecycle errors.
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrItemClosed        = errors.New("item is closed")

	// Capability errors (push, geolocation).
	ErrorUnsupported    = errors.New("not supported")
	ErrPermissionDenied = errors.New("permission denied")
)
