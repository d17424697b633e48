package poll

import (
	"context"
	"log/slog"
	"sync"

	"github.com/five82/perch/internal/state"
)

// RemoteCall persists an optimistic edit on the backend.
type RemoteCall func(ctx context.Context) error

// Mutator applies optimistic edits: the local store changes immediately and
// the remote call is fired in the background. A failed remote call is never
// rolled back or retried; the whole snapshot is re-fetched instead.
type Mutator[T any] struct {
	name    string
	store   *state.Store[T]
	resync  func()
	logger  *slog.Logger
	metrics *Metrics

	inflight sync.WaitGroup
}

// NewMutator builds a mutator for store. resync is called after any remote
// failure, normally the owning Fetcher's Refetch.
func NewMutator[T any](name string, store *state.Store[T], resync func(), opts Options) *Mutator[T] {
	return &Mutator[T]{
		name:    name,
		store:   store,
		resync:  resync,
		logger:  opts.logger(),
		metrics: opts.Metrics,
	}
}

// Apply commits mutate to the store before returning, then runs remote on its
// own goroutine without waiting for it. It reports false, and skips the remote
// call, when the store has been disposed. A nil remote makes the edit local
// only.
func (m *Mutator[T]) Apply(ctx context.Context, op string, mutate func(T) T, remote RemoteCall) bool {
	if !m.store.Mutate(mutate) {
		return false
	}
	if remote == nil {
		return true
	}

	reqCtx := context.WithoutCancel(ctx)
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		err := remote(reqCtx)
		if m.store.Closed() {
			return
		}
		m.metrics.observeMutation(m.name, op, err)
		if err == nil {
			return
		}
		m.logger.Warn("mutation failed, resyncing", "widget", m.name, "op", op, "err", err)
		if m.resync != nil {
			m.resync()
		}
	}()
	return true
}

// Wait blocks until every remote call issued so far has returned.
func (m *Mutator[T]) Wait() {
	m.inflight.Wait()
}
