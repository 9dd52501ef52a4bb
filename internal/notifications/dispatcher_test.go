package notifications

import (
	"context"
	"io"
	"testing"

	"github.com/faithguard/faithguard/internal/events"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/models"
	notifrepo "github.com/faithguard/faithguard/internal/repositories/notifications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcherFixture(t *testing.T) (*Center, *events.Bus) {
	t.Helper()
	center := NewCenter(notifrepo.NewMemoryRepository(), logging.NewJSON(io.Discard))
	bus := events.NewBus()
	d := NewDispatcher(center, logging.NewJSON(io.Discard))
	unsubscribe := d.Attach(bus)
	t.Cleanup(unsubscribe)
	return center, bus
}

func dispatcherItem(reporter string) models.Item {
	return models.Item{
		ID:                "item_1",
		Title:             "Black Wallet",
		Location:          "Main Gate",
		TempleCode:        "TEMPLE_001",
		ReporterSessionID: reporter,
	}
}

func TestDispatcherIgnoresEventsWhenUnbound(t *testing.T) {
	center, bus := newDispatcherFixture(t)

	bus.Publish(events.ItemReported{Item: dispatcherItem("session_a")})

	assert.Empty(t, center.List())
}

func TestDispatcherItemReported(t *testing.T) {
	center, bus := newDispatcherFixture(t)
	require.NoError(t, center.Bind(context.Background(), "session_b", "TEMPLE_001"))

	// someone else's report in my temple: alerted
	bus.Publish(events.ItemReported{Item: dispatcherItem("session_a")})
	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.NotifyNewLostItem, list[0].Type)
	assert.Equal(t, "Black Wallet was reported at Main Gate", list[0].Body)

	// my own report: skipped
	bus.Publish(events.ItemReported{Item: dispatcherItem("session_b")})
	assert.Len(t, center.List(), 1)

	// another temple's report: skipped
	other := dispatcherItem("session_a")
	other.TempleCode = "TEMPLE_002"
	bus.Publish(events.ItemReported{Item: other})
	assert.Len(t, center.List(), 1)
}

func TestDispatcherItemFoundGoesToReporter(t *testing.T) {
	center, bus := newDispatcherFixture(t)
	require.NoError(t, center.Bind(context.Background(), "session_a", "TEMPLE_001"))

	bus.Publish(events.ItemFound{Item: dispatcherItem("session_a"), BySessionID: "session_b"})
	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.NotifyItemFound, list[0].Type)

	// not the reporter: nothing lands
	bus.Publish(events.ItemFound{Item: dispatcherItem("session_c"), BySessionID: "session_b"})
	assert.Len(t, center.List(), 1)
}

func TestDispatcherCaseStatusChangedGoesToReporter(t *testing.T) {
	center, bus := newDispatcherFixture(t)
	require.NoError(t, center.Bind(context.Background(), "session_a", "TEMPLE_001"))

	bus.Publish(events.CaseStatusChanged{Item: dispatcherItem("session_a"), NewStatus: models.StatusClosed})
	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Case closed successfully", list[0].Title)

	bus.Publish(events.CaseStatusChanged{Item: dispatcherItem("session_c"), NewStatus: models.StatusClosed})
	assert.Len(t, center.List(), 1)
}

func TestDispatcherMessageAdded(t *testing.T) {
	center, bus := newDispatcherFixture(t)
	require.NoError(t, center.Bind(context.Background(), "session_a", "TEMPLE_001"))

	// a message from someone else on my item: alerted
	bus.Publish(events.MessageAdded{
		Item:    dispatcherItem("session_a"),
		Message: models.Message{ID: "msg_1", Text: "hello", SenderSessionID: "session_b"},
	})
	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.NotifyNewMessage, list[0].Type)
	assert.Equal(t, "hello", list[0].Body)

	// my own message on my item: skipped
	bus.Publish(events.MessageAdded{
		Item:    dispatcherItem("session_a"),
		Message: models.Message{ID: "msg_2", Text: "mine", SenderSessionID: "session_a"},
	})
	assert.Len(t, center.List(), 1)

	// someone else's conversation: skipped
	bus.Publish(events.MessageAdded{
		Item:    dispatcherItem("session_c"),
		Message: models.Message{ID: "msg_3", Text: "other", SenderSessionID: "session_b"},
	})
	assert.Len(t, center.List(), 1)
}
