package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// NewLogger creates a structured JSON logger. The diagnostics view parses
// exactly this format.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// OpenLogger appends JSON records to the file at path, creating its directory
// if needed. The TUI owns the terminal, so nothing is written to stderr. The
// returned func closes the file.
func OpenLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return NewLogger(nil, level), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return NewLogger(file, level), func() { _ = file.Close() }, nil
}
