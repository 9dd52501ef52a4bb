// Package location wraps a position source behind a cancellable
// subscription, used during the post-found item handoff. The subscription
// must be torn down when the item leaves "found" status or the owning view
// goes away, so a location sensor is never leaked.
package location

import (
	"context"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/logging"
)

// Position is one geolocation fix.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// Handler consumes position updates.
type Handler func(Position)

// Source is the underlying geolocation capability. Watch delivers updates
// until the returned cancel function is called or ctx is done.
type Source interface {
	Available(ctx context.Context) bool
	Watch(ctx context.Context, h Handler) (func(), error)
}

// Watcher manages one live position subscription at a time.
type Watcher struct {
	source Source // nil when the runtime has no geolocation
	logger logging.Logger
}

func NewWatcher(source Source, logger logging.Logger) *Watcher {
	return &Watcher{source: source, logger: logger}
}

// Available reports whether position watching can work here.
func (w *Watcher) Available(ctx context.Context) bool {
	return w.source != nil && w.source.Available(ctx)
}

// Watch starts a position subscription and returns its cancel function.
// Without a capable source it returns common.ErrorUnsupported; callers fall
// back to a manual flow (the help desk).
func (w *Watcher) Watch(ctx context.Context, h Handler) (func(), error) {
	if !w.Available(ctx) {
		return nil, common.ErrorUnsupported
	}
	cancel, err := w.source.Watch(ctx, h)
	if err != nil {
		w.logger.Warn(ctx, "geolocation watch failed", "error", err)
		return nil, err
	}
	w.logger.Debug(ctx, "geolocation watch started")
	return cancel, nil
}
