// Package poll implements the list synchronization shared by every perch
// widget: a polling fetcher that keeps a state.Store fresh, and an optimistic
// mutator that edits the store locally before persisting the change.
//
// # Fetcher
//
// A Fetcher calls its Producer once on Start and then on every interval.
// Each call runs on its own goroutine, so a hung request delays only its own
// result. Calls are not coalesced; whichever resolves last wins. Refetch
// issues an extra call outside the timer. Stop cancels the timer and disposes
// of the store; requests still in flight are left alone and their results
// are dropped.
//
// # Mutator
//
// Apply commits the local edit synchronously and fires the remote call in the
// background:
//
//	m.Apply(ctx, "delete", func(items []Todo) []Todo {
//		return poll.Remove(items, id)
//	}, func(ctx context.Context) error {
//		return client.DeleteTodo(ctx, id)
//	})
//
// When the remote call fails the mutator neither retries nor reverts. It asks
// the fetcher for a full resync, which discards any optimistic state the
// backend never received. Two overlapping edits simply layer on each other;
// a failure of either one resyncs both.
//
// # Keys
//
// List items implement Keyed. MoveKey converts a "move item K to position P"
// intent into the complete key order the backend expects for a reorder.
package poll
