// Package admin implements the privileged oversight session: a single
// hardcoded demo credential, an 8-hour signed session token, and a storage
// key fully independent of the visitor session.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Demo credential. This is a known trust-boundary gap, not a feature: a real
// deployment replaces this store with provider-backed authentication.
const (
	defaultAdminEmail    = "admin@temple.org"
	defaultAdminPassword = "admin123"
)

var adminPasswordHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// Claims is the admin token claim set: standard claims plus the admin email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type storedToken struct {
	Token string `json:"token"`
}

// Store manages the admin session. It has no relation to sessions.Store.
type Store struct {
	kv        storage.KV
	secretKey []byte
	logger    logging.Logger
	now       func() time.Time
}

func NewStore(kv storage.KV, secretKey string, logger logging.Logger) *Store {
	return &Store{kv: kv, secretKey: []byte(secretKey), logger: logger, now: time.Now}
}

// Login verifies the credential pair (case-insensitive on email) and, on
// success, persists a signed session token valid for 8 hours.
func (s *Store) Login(ctx context.Context, email, password string) (*models.AdminSession, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized != defaultAdminEmail {
		return nil, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(adminPasswordHash, []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	now := s.now()
	session := &models.AdminSession{
		Email:     normalized,
		CreatedAt: now,
		ExpiresAt: now.Add(models.AdminSessionDuration),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		Email: normalized,
	})
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign admin token: %w", err)
	}

	data, err := json.Marshal(storedToken{Token: signed})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal admin token: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyAdminSession, data); err != nil {
		return nil, fmt.Errorf("failed to persist admin session: %w", err)
	}

	s.logger.Info(ctx, "admin logged in", "email", normalized, "expires", session.ExpiresAt)
	return session, nil
}

// Current returns the admin session if a valid, unexpired token is stored.
// Expired or malformed tokens are cleared and reported as ErrorNotFound.
func (s *Store) Current(ctx context.Context) (*models.AdminSession, error) {
	data, err := s.kv.Get(ctx, storage.KeyAdminSession)
	if err != nil {
		return nil, err
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		_ = s.Logout(ctx)
		return nil, common.ErrorNotFound
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(st.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		_ = s.Logout(ctx)
		if err != nil && errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Info(ctx, "admin session expired")
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrAdminTokenInvalid
	}

	return &models.AdminSession{
		Email:     claims.Email,
		CreatedAt: claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// IsAdmin reports whether a valid admin session exists.
func (s *Store) IsAdmin(ctx context.Context) bool {
	_, err := s.Current(ctx)
	return err == nil
}

// Logout clears the admin session unconditionally.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeyAdminSession); err != nil {
		return fmt.Errorf("failed to clear admin session: %w", err)
	}
	return nil
}
