package items

import (
	"context"
	"time"

	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/timex"
)

// Advisor re-runs the duplicate check while the report form is being typed,
// debounced so a burst of keystrokes costs one query. Results arrive on the
// deliver callback; a newer suggestion supersedes any pending one.
type Advisor struct {
	store    *Store
	debounce *timex.Debouncer
	logger   logging.Logger
}

func NewAdvisor(store *Store, quiet time.Duration, logger logging.Logger) *Advisor {
	return &Advisor{
		store:    store,
		debounce: timex.NewDebouncer(quiet),
		logger:   logger,
	}
}

// Suggest schedules a duplicate check for the current form contents. Calls
// made before the quiet period elapses replace the pending check.
func (a *Advisor) Suggest(ctx context.Context, title, description, templeCode string, deliver func([]models.Item)) {
	a.debounce.Trigger(func() {
		duplicates, err := a.store.CheckForDuplicates(ctx, title, description, templeCode)
		if err != nil {
			a.logger.Warn(ctx, "duplicate check failed", "error", err)
			return
		}
		deliver(duplicates)
	})
}

// Stop cancels any pending check. Called when the report form goes away.
func (a *Advisor) Stop() {
	a.debounce.Stop()
}
