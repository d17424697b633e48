// Package widget builds the dashboard's widgets on top of the poll package.
//
// Each list widget is a Feed: one Fetcher writing into one Store it owns.
// Todos adds an optimistic Mutator for local-first edits. Board constructs
// every widget explicitly and tears them all down together; nothing is shared
// between instances.
//
// The presentation helpers in this package are pure functions so the
// renderer and the CLI can share them.
package widget
