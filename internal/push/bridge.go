package push

import (
	"context"
	"errors"
	"fmt"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/config"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/storage"
)

// Bridge wraps a Provider with the app's token and permission policy:
// tokens are bound to one (session, temple) pair, denied permission is
// remembered, and the permission prompt is offered to a browser at most
// once ever. With placeholder credentials or no provider, every push
// feature silently degrades to disabled.
type Bridge struct {
	provider Provider // nil when the runtime has no push support
	kv       storage.KV
	cfg      config.Push
	logger   logging.Logger
}

func NewBridge(provider Provider, kv storage.KV, cfg config.Push, logger logging.Logger) *Bridge {
	return &Bridge{provider: provider, kv: kv, cfg: cfg, logger: logger}
}

// Supported reports whether push can work here: a provider is present, the
// credential bundle is real, and the provider's own capability probe passes.
func (b *Bridge) Supported(ctx context.Context) bool {
	if b.provider == nil {
		return false
	}
	if !b.cfg.Configured() {
		b.logger.Warn(ctx, "push disabled: provider credentials missing or placeholders")
		return false
	}
	ok, err := b.provider.Supported(ctx)
	if err != nil {
		b.logger.Warn(ctx, "push capability probe failed", "error", err)
		return false
	}
	return ok
}

// RequestPermission drives the permission prompt. A previously denied grant
// is remembered and returned without re-prompting.
func (b *Bridge) RequestPermission(ctx context.Context) Permission {
	if !b.Supported(ctx) {
		return PermissionUnsupported
	}
	if b.provider.Permission(ctx) == PermissionDenied {
		return PermissionDenied
	}

	perm, err := b.provider.RequestPermission(ctx)
	if err != nil {
		b.logger.Warn(ctx, "permission request failed", "error", err)
		return PermissionDenied
	}
	return perm
}

// PromptSeen reports whether this browser has ever been shown the permission
// dialog. The gate is once-ever, not once per session.
func (b *Bridge) PromptSeen(ctx context.Context) (bool, error) {
	_, err := b.kv.Get(ctx, storage.KeyPromptSeen)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MarkPromptSeen records that the permission dialog has been shown.
func (b *Bridge) MarkPromptSeen(ctx context.Context) error {
	return b.kv.Put(ctx, storage.KeyPromptSeen, []byte("1"))
}

// Token registers a delivery channel for the session and caches the token
// keyed by its owning (session, temple) pair. Permission must be granted.
func (b *Bridge) Token(ctx context.Context, sessionID, templeCode string) (string, error) {
	if !b.Supported(ctx) {
		return "", common.ErrorUnsupported
	}
	if b.provider.Permission(ctx) != PermissionGranted {
		return "", common.ErrPermissionDenied
	}

	token, err := b.provider.Token(ctx, b.cfg.VAPIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to obtain push token: %w", err)
	}

	if err := b.kv.Put(ctx, storage.KeyPushToken, []byte(token)); err != nil {
		return "", err
	}
	if err := b.kv.Put(ctx, storage.KeyPushSessionID, []byte(sessionID)); err != nil {
		return "", err
	}
	if err := b.kv.Put(ctx, storage.KeyPushTempleCode, []byte(templeCode)); err != nil {
		return "", err
	}

	b.logger.Info(ctx, "push token registered", "temple", templeCode)
	return token, nil
}

// StoredToken returns the cached token only when its stored owning pair
// exactly matches the arguments; a mismatch yields "" so a token never leaks
// across sessions.
func (b *Bridge) StoredToken(ctx context.Context, sessionID, templeCode string) string {
	token, err := b.kv.Get(ctx, storage.KeyPushToken)
	if err != nil {
		return ""
	}
	owner, err := b.kv.Get(ctx, storage.KeyPushSessionID)
	if err != nil || string(owner) != sessionID {
		return ""
	}
	temple, err := b.kv.Get(ctx, storage.KeyPushTempleCode)
	if err != nil || string(temple) != templeCode {
		return ""
	}
	return string(token)
}

// ClearToken drops the cached token. Called on session end or invalidation.
func (b *Bridge) ClearToken(ctx context.Context) error {
	for _, key := range []string{storage.KeyPushToken, storage.KeyPushSessionID, storage.KeyPushTempleCode} {
		if err := b.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	if b.provider != nil {
		if err := b.provider.DeleteToken(ctx); err != nil {
			b.logger.Warn(ctx, "failed to delete provider token", "error", err)
		}
	}
	return nil
}

// OnForegroundMessage subscribes to messages arriving while the app is
// visible. The returned unsubscribe function must be called on teardown so
// handlers do not accumulate across remounts. Without support, the handler
// never fires and the unsubscribe is a no-op.
func (b *Bridge) OnForegroundMessage(ctx context.Context, h Handler) func() {
	if !b.Supported(ctx) {
		return func() {}
	}
	unsubscribe, err := b.provider.OnMessage(h)
	if err != nil {
		b.logger.Warn(ctx, "failed to subscribe to foreground messages", "error", err)
		return func() {}
	}
	return unsubscribe
}
