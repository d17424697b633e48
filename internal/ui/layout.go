package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutSingleWidth is the threshold below which only the focused widget
	// is shown.
	LayoutSingleWidth = 80

	// LayoutWideWidth is the minimum width for a three column grid.
	LayoutWideWidth = 120

	// LayoutCompactWidth is the threshold below which the header drops
	// secondary information.
	LayoutCompactWidth = 100
)

// Log display limits.
const (
	// LogLineLimit is the number of log lines loaded into the diagnostics view.
	LogLineLimit = 1000
)

// Timing constants.
const (
	// DefaultUIInterval is how often relative timestamps are re-rendered.
	DefaultUIInterval = 30 * time.Second

	// StatusFlashDuration is how long a transient status message stays up.
	StatusFlashDuration = 4 * time.Second
)
