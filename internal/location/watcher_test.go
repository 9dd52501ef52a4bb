package location

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	available bool
	watchErr  error
	handler   Handler
	cancelled int
}

func (f *fakeSource) Available(context.Context) bool { return f.available }

func (f *fakeSource) Watch(_ context.Context, h Handler) (func(), error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	f.handler = h
	return func() { f.cancelled++ }, nil
}

func TestWatcherUnsupportedWithoutSource(t *testing.T) {
	w := NewWatcher(nil, logging.NewJSON(io.Discard))
	ctx := context.Background()

	assert.False(t, w.Available(ctx))
	_, err := w.Watch(ctx, func(Position) {})
	assert.ErrorIs(t, err, common.ErrorUnsupported)
}

func TestWatcherUnsupportedWhenSourceUnavailable(t *testing.T) {
	w := NewWatcher(&fakeSource{available: false}, logging.NewJSON(io.Discard))
	_, err := w.Watch(context.Background(), func(Position) {})
	assert.ErrorIs(t, err, common.ErrorUnsupported)
}

func TestWatcherDeliversAndCancels(t *testing.T) {
	src := &fakeSource{available: true}
	w := NewWatcher(src, logging.NewJSON(io.Discard))

	var got []Position
	cancel, err := w.Watch(context.Background(), func(p Position) { got = append(got, p) })
	require.NoError(t, err)

	src.handler(Position{Latitude: 13.75, Longitude: 100.49, Accuracy: 5})
	require.Len(t, got, 1)
	assert.Equal(t, 13.75, got[0].Latitude)

	cancel()
	assert.Equal(t, 1, src.cancelled)
}

func TestWatcherPropagatesSourceError(t *testing.T) {
	src := &fakeSource{available: true, watchErr: errors.New("sensor busy")}
	w := NewWatcher(src, logging.NewJSON(io.Discard))

	_, err := w.Watch(context.Background(), func(Position) {})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorUnsupported)
}
