package state

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Snapshot represents the latest value available to the UI together with
// its fetch state.
type Snapshot[T any] struct {
	Data                T
	Loading             bool // true until the first fetch resolves
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot[T]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to one live snapshot. Each widget owns
// its own Store; there is no shared state between stores.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
	clone    func(T) T
	closed   bool
	onChange func()
	now      func() time.Time
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithClone sets the function used to copy data out of the store.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(s *Store[T]) { s.clone = clone }
}

// WithOnChange registers a callback invoked after every effective write.
// The callback runs outside the store lock.
func WithOnChange[T any](fn func()) Option[T] {
	return func(s *Store[T]) { s.onChange = fn }
}

// WithClock overrides the completion-time source.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *Store[T]) { s.now = now }
}

// NewStore returns a store holding initial and marked as loading.
func NewStore[T any](initial T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		snapshot: Snapshot[T]{Data: initial, Loading: true},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewListStore returns a store for an ordered collection. Snapshots and
// mutations always work on copies of the slice.
func NewListStore[E any](initial []E, opts ...Option[[]E]) *Store[[]E] {
	opts = append([]Option[[]E]{WithClone(cloneList[E])}, opts...)
	return NewStore(cloneList(initial), opts...)
}

// Update records the outcome of one fetch. On success the data is replaced
// wholesale; when err is non-nil the previous data and LastUpdated are kept
// but the error is recorded for visibility. It reports whether the write was
// applied; writes after Close are dropped.
func (s *Store[T]) Update(data T, err error) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}

	s.snapshot.Loading = false
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.Data = s.copy(data)
		s.snapshot.LastError = nil
		s.snapshot.LastUpdated = s.now()
		s.snapshot.ConsecutiveFailures = 0
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// Mutate applies fn to the current data and stores the result. fn receives
// a private copy and may modify it. Fetch state is left untouched.
func (s *Store[T]) Mutate(fn func(T) T) bool {
	if fn == nil {
		return false
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.snapshot.Data = fn(s.copy(s.snapshot.Data))
	s.mu.Unlock()

	s.notify()
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = s.copy(s.snapshot.Data)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Close disposes of the store. Later writes are no-ops.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Store[T]) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store[T]) copy(data T) T {
	if s.clone == nil {
		return data
	}
	return s.clone(data)
}

func (s *Store[T]) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

func cloneList[E any](items []E) []E {
	if len(items) == 0 {
		return nil
	}
	return slices.Clone(items)
}
