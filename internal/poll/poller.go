// Package poll implements the data-freshness contract as a generic
// subscription backed by periodic polling: subscribers observe new or
// changed values within the polling interval. A different transport (push,
// sockets) could replace the implementation without changing the contract.
package poll

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/faithguard/faithguard/internal/logging"
)

// Fetch produces the current value of the watched data set.
type Fetch[T any] func(ctx context.Context) (T, error)

// Poller re-fetches a value on an interval and notifies subscribers when it
// changes. All tickers stop when the Run context is cancelled.
type Poller[T any] struct {
	fetch    Fetch[T]
	interval time.Duration
	logger   logging.Logger

	mu      sync.Mutex
	nextID  int
	subs    map[int]func(T)
	last    T
	hasLast bool
}

func NewPoller[T any](fetch Fetch[T], interval time.Duration, logger logging.Logger) *Poller[T] {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Poller[T]{
		fetch:    fetch,
		interval: interval,
		logger:   logger,
		subs:     make(map[int]func(T)),
	}
}

// Subscribe registers a handler for value changes and returns its cancel
// function. Handlers are invoked on the poller goroutine.
func (p *Poller[T]) Subscribe(h func(T)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = h
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Run polls until ctx is cancelled. Fetch errors are logged and the previous
// value stands until the next round.
func (p *Poller[T]) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context) {
	value, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn(ctx, "poll fetch failed", "error", err)
		return
	}

	p.mu.Lock()
	changed := !p.hasLast || !reflect.DeepEqual(p.last, value)
	p.last = value
	p.hasLast = true
	handlers := make([]func(T), 0, len(p.subs))
	for _, h := range p.subs {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	if !changed {
		return
	}
	for _, h := range handlers {
		h(value)
	}
}
