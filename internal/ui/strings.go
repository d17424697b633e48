package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to the given display width, adding an ellipsis
// if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= limit {
		return value
	}
	runes := []rune(value)
	if limit <= 3 {
		return string(runes[:min(limit, len(runes))])
	}
	out := runes
	for len(out) > 0 && lipgloss.Width(string(out)) > limit-3 {
		out = out[:len(out)-1]
	}
	return string(out) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// relativeTime renders t relative to now ("just now", "5m ago", "3h ago",
// "2d ago"). The zero time renders as "never".
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// timeRange renders the local start and end clock times of an event. All-day
// events (midnight to midnight) render as "All day".
func timeRange(start, end time.Time) string {
	if start.IsZero() {
		return ""
	}
	start = start.Local()
	if end.IsZero() {
		return start.Format("15:04")
	}
	end = end.Local()
	if start.Hour() == 0 && start.Minute() == 0 && end.Hour() == 0 && end.Minute() == 0 && end.After(start) {
		return "All day"
	}
	return start.Format("15:04") + " - " + end.Format("15:04")
}
