// Package logtail reads perch's own log file for the diagnostics view.
//
// Read returns the last N lines using a ring buffer, so memory stays bounded
// by N regardless of file size. ParseLine decodes the JSON records written by
// slog into an Entry with level, message and sorted attributes; anything that
// is not a JSON object is passed through as a plain message. Watch uses
// fsnotify to report writes so the view can refresh without polling.
//
// A missing log file is not an error: Read returns no lines.
package logtail
