package push

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/config"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a scriptable Provider for bridge tests.
type fakeProvider struct {
	supported     bool
	supportedErr  error
	permission    Permission
	promptResult  Permission
	promptCalls   int
	token         string
	tokenErr      error
	deleted       bool
	handlers      []Handler
	unsubscribed  int
	onMessageErr  error
	lastVAPIDUsed string
}

func (f *fakeProvider) Supported(context.Context) (bool, error) { return f.supported, f.supportedErr }
func (f *fakeProvider) Permission(context.Context) Permission   { return f.permission }

func (f *fakeProvider) RequestPermission(context.Context) (Permission, error) {
	f.promptCalls++
	f.permission = f.promptResult
	return f.promptResult, nil
}

func (f *fakeProvider) Token(_ context.Context, vapidKey string) (string, error) {
	f.lastVAPIDUsed = vapidKey
	return f.token, f.tokenErr
}

func (f *fakeProvider) DeleteToken(context.Context) error {
	f.deleted = true
	return nil
}

func (f *fakeProvider) OnMessage(h Handler) (func(), error) {
	if f.onMessageErr != nil {
		return nil, f.onMessageErr
	}
	f.handlers = append(f.handlers, h)
	return func() { f.unsubscribed++ }, nil
}

func realConfig() config.Push {
	return config.Push{
		APIKey:    "api-key",
		ProjectID: "project-1",
		SenderID:  "sender-1",
		AppID:     "app-1",
		VAPIDKey:  "vapid-key",
	}
}

func newTestBridge(provider Provider, cfg config.Push) (*Bridge, storage.KV) {
	kv := storage.NewMemory()
	return NewBridge(provider, kv, cfg, logging.NewJSON(io.Discard)), kv
}

func TestSupported(t *testing.T) {
	ctx := context.Background()

	t.Run("no provider", func(t *testing.T) {
		b, _ := newTestBridge(nil, realConfig())
		assert.False(t, b.Supported(ctx))
	})

	t.Run("placeholder credentials", func(t *testing.T) {
		cfg := realConfig()
		cfg.APIKey = "changeme"
		b, _ := newTestBridge(&fakeProvider{supported: true}, cfg)
		assert.False(t, b.Supported(ctx))
	})

	t.Run("probe failure", func(t *testing.T) {
		b, _ := newTestBridge(&fakeProvider{supportedErr: errors.New("boom")}, realConfig())
		assert.False(t, b.Supported(ctx))
	})

	t.Run("supported", func(t *testing.T) {
		b, _ := newTestBridge(&fakeProvider{supported: true}, realConfig())
		assert.True(t, b.Supported(ctx))
	})
}

func TestRequestPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported runtime", func(t *testing.T) {
		b, _ := newTestBridge(nil, realConfig())
		assert.Equal(t, PermissionUnsupported, b.RequestPermission(ctx))
	})

	t.Run("grant", func(t *testing.T) {
		p := &fakeProvider{supported: true, permission: PermissionDefault, promptResult: PermissionGranted}
		b, _ := newTestBridge(p, realConfig())
		assert.Equal(t, PermissionGranted, b.RequestPermission(ctx))
		assert.Equal(t, 1, p.promptCalls)
	})

	t.Run("denied is remembered, never re-prompted", func(t *testing.T) {
		p := &fakeProvider{supported: true, permission: PermissionDenied}
		b, _ := newTestBridge(p, realConfig())
		assert.Equal(t, PermissionDenied, b.RequestPermission(ctx))
		assert.Equal(t, PermissionDenied, b.RequestPermission(ctx))
		assert.Equal(t, 0, p.promptCalls)
	})
}

func TestPromptSeenOnceEver(t *testing.T) {
	b, _ := newTestBridge(&fakeProvider{supported: true}, realConfig())
	ctx := context.Background()

	seen, err := b.PromptSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, b.MarkPromptSeen(ctx))
	seen, err = b.PromptSeen(ctx)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestTokenRequiresGrantedPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported", func(t *testing.T) {
		b, _ := newTestBridge(nil, realConfig())
		_, err := b.Token(ctx, "session_a", "TEMPLE_001")
		assert.ErrorIs(t, err, common.ErrorUnsupported)
	})

	t.Run("permission not granted", func(t *testing.T) {
		p := &fakeProvider{supported: true, permission: PermissionDefault}
		b, _ := newTestBridge(p, realConfig())
		_, err := b.Token(ctx, "session_a", "TEMPLE_001")
		assert.ErrorIs(t, err, common.ErrPermissionDenied)
	})
}

func TestTokenBoundToSessionAndTemple(t *testing.T) {
	p := &fakeProvider{supported: true, permission: PermissionGranted, token: "tok-123"}
	b, _ := newTestBridge(p, realConfig())
	ctx := context.Background()

	token, err := b.Token(ctx, "session_a", "TEMPLE_001")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "vapid-key", p.lastVAPIDUsed)

	assert.Equal(t, "tok-123", b.StoredToken(ctx, "session_a", "TEMPLE_001"))

	// any mismatch in the owning pair hides the token
	assert.Empty(t, b.StoredToken(ctx, "session_b", "TEMPLE_001"))
	assert.Empty(t, b.StoredToken(ctx, "session_a", "TEMPLE_002"))
}

func TestClearToken(t *testing.T) {
	p := &fakeProvider{supported: true, permission: PermissionGranted, token: "tok-123"}
	b, _ := newTestBridge(p, realConfig())
	ctx := context.Background()

	_, err := b.Token(ctx, "session_a", "TEMPLE_001")
	require.NoError(t, err)

	require.NoError(t, b.ClearToken(ctx))
	assert.Empty(t, b.StoredToken(ctx, "session_a", "TEMPLE_001"))
	assert.True(t, p.deleted, "provider-side channel invalidated too")
}

func TestOnForegroundMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("relays and unsubscribes", func(t *testing.T) {
		p := &fakeProvider{supported: true, permission: PermissionGranted}
		b, _ := newTestBridge(p, realConfig())

		var got []Message
		unsubscribe := b.OnForegroundMessage(ctx, func(m Message) { got = append(got, m) })
		require.Len(t, p.handlers, 1)

		p.handlers[0](Message{Title: "hi", Data: map[string]string{"itemId": "item_1"}})
		require.Len(t, got, 1)
		assert.Equal(t, "hi", got[0].Title)

		unsubscribe()
		assert.Equal(t, 1, p.unsubscribed)
	})

	t.Run("no support yields no-op unsubscribe", func(t *testing.T) {
		b, _ := newTestBridge(nil, realConfig())
		unsubscribe := b.OnForegroundMessage(ctx, func(Message) { t.Fatal("must never fire") })
		assert.NotPanics(t, unsubscribe)
	})

	t.Run("subscribe failure yields no-op unsubscribe", func(t *testing.T) {
		p := &fakeProvider{supported: true, onMessageErr: errors.New("boom")}
		b, _ := newTestBridge(p, realConfig())
		unsubscribe := b.OnForegroundMessage(ctx, func(Message) {})
		assert.NotPanics(t, unsubscribe)
	})
}
