// Package ui renders the perch dashboard with Bubble Tea.
//
// The model never owns widget data. Each frame reads snapshots straight from
// the widget.Board, and Run forwards Board change notifications into the
// program as messages so the screen redraws when a poll or mutation lands.
//
// # Views
//
//   - Dashboard: one titled panel per widget laid out in a one, two or three
//     column grid depending on terminal width.
//   - Diagnostics: a scrollable tail of perch's own log file, refreshed when
//     the file changes.
//
// Overlays (help, the Google authorization dialog and the todo text input)
// take keyboard focus ahead of the active view.
//
// # Key Bindings
//
//   - Tab/Shift+Tab: Move focus between panels
//   - j/k, g/G: Select within the focused panel
//   - enter/space: Expand or collapse the selected item
//   - o: Open the item link in the browser
//   - y: Copy the item link to the clipboard
//   - a, x, r, d, J/K: Add, toggle, rename, delete and move todos
//   - 1-9: Open a quick link
//   - m: Open Gmail
//   - R: Reload every widget
//   - L: Toggle the diagnostics view
//   - T: Cycle theme
//   - ?: Help
//   - e or Ctrl+C: Exit
package ui
