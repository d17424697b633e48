// Package state provides thread-safe snapshot storage for perch widgets.
//
// # Overview
//
// Every widget owns exactly one Store. The store holds the widget's live
// value (an ordered collection for list widgets, a single status value for
// the badge and dialog widgets) together with its fetch state. It is the
// coordination point where poll results, optimistic edits and UI rendering
// meet.
//
// # Architecture
//
//	Producers:                      Consumer (UI):
//	┌──────────────────────┐       ┌──────────────────┐
//	│ poll.Fetcher         │       │                  │
//	│   store.Update()     │──────→│ store.Snapshot() │
//	│ poll.Mutator         │(mutex)│      ↓           │
//	│   store.Mutate()     │──────→│  render panel    │
//	└──────────────────────┘       └──────────────────┘
//
// # Update Semantics
//
//	// Success: replace data wholesale
//	store.Update(items, nil)
//	→ Data = items, LastError = nil, LastUpdated = now, failures = 0
//
//	// Failure: keep what we had
//	store.Update(nil, err)
//	→ Data unchanged, LastUpdated unchanged, LastError = err, failures++
//
// Either outcome clears Loading, which is only true until the first fetch
// resolves. Mutate applies an optimistic edit to a private copy and never
// touches fetch state.
//
// # Disposal
//
// Close marks the store as disposed. Results from requests that were still
// in flight when the widget was torn down are silently dropped.
package state
