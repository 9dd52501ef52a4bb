package sessions

import (
	"context"
	"time"

	"github.com/faithguard/faithguard/internal/logging"
)

// Watcher re-evaluates session validity on an interval so expiry is observed
// even with no user interaction. When a held session lapses, onExpire fires
// exactly once; the watcher then keeps running and will fire again for the
// next session that lapses.
type Watcher struct {
	store    *Store
	interval time.Duration
	onExpire func()
	logger   logging.Logger
}

func NewWatcher(store *Store, interval time.Duration, onExpire func(), logger logging.Logger) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{store: store, interval: interval, onExpire: onExpire, logger: logger}
}

// Run blocks until ctx is cancelled. Callers usually start it with go.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	hadSession := w.store.IsValid(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			valid := w.store.IsValid(ctx)
			if hadSession && !valid {
				w.logger.Info(ctx, "session lapsed, notifying")
				if w.onExpire != nil {
					w.onExpire()
				}
			}
			hadSession = valid
		}
	}
}
