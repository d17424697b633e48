package widget

import (
	"context"

	"github.com/five82/perch/internal/poll"
	"github.com/five82/perch/internal/state"
)

// Lifecycle is the mount/unmount surface shared by every widget.
type Lifecycle interface {
	Name() string
	Start(ctx context.Context)
	Refetch()
	Stop()
	Wait()
}

// Widget pairs one store with the fetcher that keeps it fresh.
type Widget[T any] struct {
	store   *state.Store[T]
	fetcher *poll.Fetcher[T]
}

func newWidget[T any](name string, store *state.Store[T], produce poll.Producer[T], opts poll.Options) *Widget[T] {
	return &Widget[T]{
		store:   store,
		fetcher: poll.NewFetcher(name, store, produce, opts),
	}
}

// NewStatus builds a widget around a single polled value.
func NewStatus[T any](name string, initial T, produce poll.Producer[T], opts poll.Options, storeOpts ...state.Option[T]) *Widget[T] {
	return newWidget(name, state.NewStore(initial, storeOpts...), produce, opts)
}

// Name returns the widget name used in logs and metrics.
func (w *Widget[T]) Name() string { return w.fetcher.Name() }

// Snapshot returns the widget's current value and fetch state.
func (w *Widget[T]) Snapshot() state.Snapshot[T] { return w.store.Snapshot() }

// Start performs the initial fetch and begins polling.
func (w *Widget[T]) Start(ctx context.Context) { w.fetcher.Start(ctx) }

// Refetch re-fetches outside the polling cadence.
func (w *Widget[T]) Refetch() { w.fetcher.Refetch() }

// Stop cancels polling and disposes of the store.
func (w *Widget[T]) Stop() { w.fetcher.Stop() }

// Wait blocks until outstanding fetches resolve.
func (w *Widget[T]) Wait() { w.fetcher.Wait() }

// RenderState selects what a list panel shows.
type RenderState int

const (
	StateLoading RenderState = iota // placeholder while the first fetch is pending
	StateEmpty                      // fetch resolved with no items
	StateItems
)

// StateOf applies the list rendering rules: items win, otherwise loading
// shows a placeholder and a settled empty list shows the empty message.
func StateOf(loading bool, count int) RenderState {
	switch {
	case count > 0:
		return StateItems
	case loading:
		return StateLoading
	default:
		return StateEmpty
	}
}

// Feed is a read-only polled list widget.
type Feed[T any] struct {
	*Widget[[]T]
	Title string
	Empty string
}

// NewFeed builds a list widget. The collection starts empty.
func NewFeed[T any](name, title, empty string, produce poll.Producer[[]T], opts poll.Options, storeOpts ...state.Option[[]T]) *Feed[T] {
	return &Feed[T]{
		Widget: newWidget(name, state.NewListStore[T](nil, storeOpts...), produce, opts),
		Title:  title,
		Empty:  empty,
	}
}

// RenderState reports which of the three list states applies right now.
func (f *Feed[T]) RenderState() RenderState {
	snap := f.Snapshot()
	return StateOf(snap.Loading, len(snap.Data))
}
