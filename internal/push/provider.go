// Package push bridges the app to an external browser push-messaging
// provider: permission state, the session-bound device token, and the
// foreground message relay. Background delivery stays with the platform's
// notification surface.
package push

import "context"

// Permission is the push permission state reported by the provider.
type Permission string

const (
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionDefault     Permission = "default"
	PermissionUnsupported Permission = "unsupported"
)

// Message is a push payload relayed while the app is in the foreground.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Handler consumes one foreground message.
type Handler func(Message)

// Provider is the external push-messaging collaborator. Implementations
// register a delivery channel, mint opaque device tokens scoped to a
// permission grant, and relay foreground messages.
type Provider interface {
	// Supported probes whether the runtime can deliver push at all.
	Supported(ctx context.Context) (bool, error)

	// Permission returns the current permission state without prompting.
	Permission(ctx context.Context) Permission

	// RequestPermission drives the permission prompt and returns the
	// resulting state.
	RequestPermission(ctx context.Context) (Permission, error)

	// Token registers a delivery channel and returns its opaque token.
	// Only valid while permission is granted.
	Token(ctx context.Context, vapidKey string) (string, error)

	// DeleteToken invalidates the current delivery channel.
	DeleteToken(ctx context.Context) error

	// OnMessage subscribes to foreground messages and returns an
	// unsubscribe function.
	OnMessage(h Handler) (func(), error)
}
