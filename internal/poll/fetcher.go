package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/perch/internal/state"
)

// DefaultInterval is the refresh cadence used by every list widget.
const DefaultInterval = 5 * time.Minute

// Producer fetches one fresh value from the backend.
type Producer[T any] func(ctx context.Context) (T, error)

// Options configure a Fetcher or Mutator.
type Options struct {
	// Interval between polls. Zero or negative fetches once and never polls.
	Interval time.Duration
	Logger   *slog.Logger
	Metrics  *Metrics
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Fetcher keeps a Store fresh by invoking a Producer on start and then on a
// fixed interval. Each invocation runs on its own goroutine so a hung request
// never delays the next tick. Overlapping invocations are not coalesced: the
// last one to resolve wins.
type Fetcher[T any] struct {
	name     string
	produce  Producer[T]
	store    *state.Store[T]
	interval time.Duration
	logger   *slog.Logger
	metrics  *Metrics

	mu       sync.Mutex
	reqCtx   context.Context
	cancel   context.CancelFunc
	started  bool
	stopped  bool
	loop     sync.WaitGroup
	inflight sync.WaitGroup
}

// NewFetcher binds produce to store. Nothing happens until Start.
func NewFetcher[T any](name string, store *state.Store[T], produce Producer[T], opts Options) *Fetcher[T] {
	return &Fetcher[T]{
		name:     name,
		produce:  produce,
		store:    store,
		interval: opts.Interval,
		logger:   opts.logger(),
		metrics:  opts.Metrics,
	}
}

// Name returns the widget name used in logs and metrics.
func (f *Fetcher[T]) Name() string { return f.name }

// Store returns the store this fetcher writes to.
func (f *Fetcher[T]) Store() *state.Store[T] { return f.store }

// Start fetches immediately and then on every interval until Stop is called
// or ctx is cancelled. Requests inherit ctx values but not its cancellation;
// a request outliving the widget simply has its result dropped.
func (f *Fetcher[T]) Start(ctx context.Context) {
	f.mu.Lock()
	if f.started || f.stopped {
		f.mu.Unlock()
		return
	}
	f.started = true
	f.reqCtx = context.WithoutCancel(ctx)
	loopCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	f.Refetch()
	if f.interval <= 0 {
		return
	}

	f.loop.Add(1)
	go func() {
		defer f.loop.Done()
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				f.Refetch()
			}
		}
	}()
}

// Refetch triggers an out-of-band fetch. It returns immediately.
func (f *Fetcher[T]) Refetch() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	ctx := f.reqCtx
	if ctx == nil {
		ctx = context.Background()
	}
	f.inflight.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.inflight.Done()
		f.fetch(ctx)
	}()
}

func (f *Fetcher[T]) fetch(ctx context.Context) {
	data, err := f.produce(ctx)
	if err != nil {
		var zero T
		if !f.store.Update(zero, err) {
			return
		}
		f.logger.Warn("poll failed", "widget", f.name, "err", err)
		f.metrics.observePoll(f.name, err)
		return
	}
	if !f.store.Update(data, nil) {
		return
	}
	f.logger.Debug("poll complete", "widget", f.name)
	f.metrics.observePoll(f.name, nil)
}

// Stop cancels the polling timer and disposes of the store. In-flight
// requests keep running but their results are discarded.
func (f *Fetcher[T]) Stop() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.stopped = true
	if f.cancel != nil {
		f.cancel()
	}
	f.mu.Unlock()

	f.store.Close()
}

// Wait blocks until the polling loop has exited and every fetch issued so far
// has resolved. Call it after Stop, or once no further fetches are scheduled.
func (f *Fetcher[T]) Wait() {
	f.loop.Wait()
	f.inflight.Wait()
}
