// Package events provides the in-process publish/subscribe bus carrying
// typed item and message events between the stores, the notification center
// and the push bridge.
package events

import (
	"sync"

	"github.com/faithguard/faithguard/internal/models"
)

// Event is the union of payloads delivered on the bus.
type Event interface{ isEvent() }

// ItemReported is published after a new lost-item report is stored.
type ItemReported struct {
	Item       models.Item
	Duplicates []models.Item
}

// ItemFound is published when a non-reporter marks an item as found.
type ItemFound struct {
	Item        models.Item
	BySessionID string
}

// CaseStatusChanged is published on every legal status transition.
type CaseStatusChanged struct {
	Item      models.Item
	NewStatus models.ItemStatus
}

// MessageAdded is published after a message is appended to an item's log.
type MessageAdded struct {
	Item    models.Item
	Message models.Message
}

func (ItemReported) isEvent()      {}
func (ItemFound) isEvent()         {}
func (CaseStatusChanged) isEvent() {}
func (MessageAdded) isEvent()      {}

// Handler consumes one event.
type Handler func(Event)

// Bus delivers published events synchronously to every subscriber, in
// subscription order. Handlers run on the publisher's goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
	order  []int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns an unsubscribe function. The
// unsubscribe function is idempotent.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers ev to all current subscribers.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, id := range b.order {
		if h, ok := b.subs[id]; ok {
			handlers = append(handlers, h)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
