package widget

import (
	"strconv"
	"sync"
	"time"

	"github.com/five82/perch/internal/backend"
)

// UnreadBadge formats the unread-mail badge. Zero or negative counts render
// nothing; counts above 99 are capped.
func UnreadBadge(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > 99:
		return "99+"
	default:
		return strconv.Itoa(count)
	}
}

// Unread returns the badge text for the unread widget, or "" until a count
// has loaded.
func Unread(w *Widget[backend.UnreadCount]) string {
	snap := w.Snapshot()
	if snap.LastUpdated.IsZero() {
		return ""
	}
	return UnreadBadge(snap.Data.Count)
}

// AuthDialog tracks whether the Google authorization prompt is visible. It is
// fed every auth status the backend reports and opens when the status moves
// to a non-authorized value, including the first status observed.
type AuthDialog struct {
	mu       sync.Mutex
	open     bool
	seen     bool
	last     backend.AuthState
	current  backend.AuthStatus
	observed time.Time
}

// Observe records a status reported at the given time. Repeated reports of
// the same stamp are ignored so a redraw never reopens a dismissed dialog.
func (d *AuthDialog) Observe(status backend.AuthStatus, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if at.IsZero() || (!d.observed.IsZero() && !at.After(d.observed)) {
		return
	}
	d.observed = at
	d.current = status
	if !status.Authorized() && (!d.seen || d.last != status.Status) {
		d.open = true
	}
	if status.Authorized() {
		d.open = false
	}
	d.seen = true
	d.last = status.Status
}

// Dismiss hides the dialog without changing auth state.
func (d *AuthDialog) Dismiss() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

// Open reports whether the dialog should be shown.
func (d *AuthDialog) Open() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Status returns the last observed auth status.
func (d *AuthDialog) Status() backend.AuthStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// AuthCopy returns the dialog title and message for a non-authorized status.
func AuthCopy(status backend.AuthStatus) (title, body string) {
	if status.Status == backend.AuthExpired {
		title = "Google Authorization Expired"
		body = "Your Google authorization token has expired. Please re-authorize to continue using Calendar and Gmail widgets."
	} else {
		title = "Google Not Configured"
		body = "Google is not configured yet. Please authorize to enable Calendar and Gmail widgets."
	}
	if status.AuthURL == "" {
		body += "\n\nUnable to generate authorization URL. Please check your Google credentials configuration."
	}
	return title, body
}
