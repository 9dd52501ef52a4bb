package notifications

import (
	"context"

	"github.com/faithguard/faithguard/internal/events"
	"github.com/faithguard/faithguard/internal/logging"
)

// Dispatcher fans item and message events into the notification center for
// the currently bound session. Events that concern the bound session's own
// actions are skipped; reporter-directed alerts only land when the bound
// session owns the case.
type Dispatcher struct {
	center *Center
	logger logging.Logger
}

func NewDispatcher(center *Center, logger logging.Logger) *Dispatcher {
	return &Dispatcher{center: center, logger: logger}
}

// Attach subscribes the dispatcher to the bus and returns the unsubscribe
// function.
func (d *Dispatcher) Attach(bus *events.Bus) func() {
	return bus.Subscribe(d.handle)
}

func (d *Dispatcher) handle(ev events.Event) {
	ctx := context.Background()

	scope, ok := d.center.Scope()
	if !ok {
		return
	}

	var (
		input AddInput
		want  bool
	)

	switch e := ev.(type) {
	case events.ItemReported:
		// Don't alert the reporter about their own report.
		want = e.Item.ReporterSessionID != scope.SessionID && e.Item.TempleCode == scope.TempleCode
		input = NewLostItemPayload(e.Item)
	case events.ItemFound:
		want = e.Item.ReporterSessionID == scope.SessionID
		input = ItemFoundPayload(e.Item)
	case events.CaseStatusChanged:
		want = e.Item.ReporterSessionID == scope.SessionID
		input = CaseStatusChangePayload(e.Item, e.NewStatus)
	case events.MessageAdded:
		want = e.Item.ReporterSessionID == scope.SessionID &&
			e.Message.SenderSessionID != scope.SessionID
		input = NewMessagePayload(e.Item, e.Message)
	default:
		return
	}

	if !want {
		return
	}
	if _, err := d.center.Add(ctx, input); err != nil {
		d.logger.Warn(ctx, "failed to add notification", "error", err)
	}
}
