package widget

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/poll"
	"github.com/five82/perch/internal/state"
)

// Config tunes the board's polling.
type Config struct {
	// Interval for list widgets and the unread count. Defaults to
	// poll.DefaultInterval.
	Interval time.Duration
	// AuthInterval for the Google auth status. Defaults to poll.DefaultInterval.
	AuthInterval time.Duration
	Logger       *slog.Logger
	Metrics      *poll.Metrics
}

// Board owns every widget on the dashboard.
type Board struct {
	Todos         *Todos
	Calendar      *Feed[backend.CalendarEvent]
	Reviews       *Feed[backend.PullRequest]
	MyPRs         *Feed[backend.PullRequest]
	JiraTasks     *Feed[backend.JiraIssue]
	Notifications *Feed[backend.JiraIssue]
	Unread        *Widget[backend.UnreadCount]
	Demo          *Widget[backend.DemoMode]
	Auth          *Widget[backend.AuthStatus]
	AuthDialog    *AuthDialog

	logger   *slog.Logger
	listener atomic.Pointer[func()]
}

// NewBoard builds every widget against api. Nothing is fetched until Start.
func NewBoard(api backend.Dashboard, cfg Config) *Board {
	if cfg.Interval <= 0 {
		cfg.Interval = poll.DefaultInterval
	}
	if cfg.AuthInterval <= 0 {
		cfg.AuthInterval = poll.DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	b := &Board{AuthDialog: &AuthDialog{}, logger: cfg.Logger}
	opts := poll.Options{Interval: cfg.Interval, Logger: cfg.Logger, Metrics: cfg.Metrics}

	b.Todos = NewTodos(api, opts, state.WithOnChange[[]backend.Todo](b.changed))
	b.Calendar = NewFeed[backend.CalendarEvent]("calendar", "Today's Events", "No events today.",
		api.CalendarEvents, opts, state.WithOnChange[[]backend.CalendarEvent](b.changed))
	b.Reviews = NewFeed[backend.PullRequest]("reviews", "PRs Awaiting Review", "No pending reviews.",
		api.ReviewRequests, opts, state.WithOnChange[[]backend.PullRequest](b.changed))
	b.MyPRs = NewFeed[backend.PullRequest]("my-prs", "My Open PRs", "No open PRs.",
		api.MyPullRequests, opts, state.WithOnChange[[]backend.PullRequest](b.changed))
	b.JiraTasks = NewFeed[backend.JiraIssue]("jira-tasks", "Jira Tasks", "No active tasks.",
		api.JiraTasks, opts, state.WithOnChange[[]backend.JiraIssue](b.changed))
	b.Notifications = NewFeed[backend.JiraIssue]("jira-notifications", "Jira Notifications",
		"No recent mentions or watched updates.",
		api.JiraNotifications, opts, state.WithOnChange[[]backend.JiraIssue](b.changed))
	b.Unread = NewStatus[backend.UnreadCount]("gmail", backend.UnreadCount{},
		api.GmailUnread, opts, state.WithOnChange[backend.UnreadCount](b.changed))

	oneShot := opts
	oneShot.Interval = 0
	b.Demo = NewStatus[backend.DemoMode]("demo-mode", backend.DemoMode{},
		api.DemoMode, oneShot, state.WithOnChange[backend.DemoMode](b.changed))

	authOpts := opts
	authOpts.Interval = cfg.AuthInterval
	b.Auth = NewStatus[backend.AuthStatus]("google-auth", backend.AuthStatus{},
		api.GoogleAuthStatus, authOpts, state.WithOnChange[backend.AuthStatus](b.authChanged))
	return b
}

// OnChange registers fn to be called after any widget's state changes. It may
// be called from any goroutine.
func (b *Board) OnChange(fn func()) {
	if fn == nil {
		b.listener.Store(nil)
		return
	}
	b.listener.Store(&fn)
}

func (b *Board) changed() {
	if fn := b.listener.Load(); fn != nil {
		(*fn)()
	}
}

func (b *Board) authChanged() {
	snap := b.Auth.Snapshot()
	if snap.LastError == nil {
		b.AuthDialog.Observe(snap.Data, snap.LastUpdated)
	}
	b.changed()
}

// Widgets returns every widget in display order.
func (b *Board) Widgets() []Lifecycle {
	return []Lifecycle{
		b.Todos, b.Calendar, b.Reviews, b.MyPRs, b.JiraTasks, b.Notifications,
		b.Unread, b.Demo, b.Auth,
	}
}

// Start mounts every widget.
func (b *Board) Start(ctx context.Context) {
	b.logger.Info("board starting", "widgets", len(b.Widgets()))
	for _, w := range b.Widgets() {
		w.Start(ctx)
	}
}

// ReloadAll re-fetches every widget, the equivalent of reloading the page.
func (b *Board) ReloadAll() {
	b.logger.Info("reloading all widgets")
	for _, w := range b.Widgets() {
		w.Refetch()
	}
}

// Stop unmounts every widget. Results that arrive afterwards are dropped.
func (b *Board) Stop() {
	for _, w := range b.Widgets() {
		w.Stop()
	}
	b.logger.Info("board stopped")
}

// Wait blocks until every in-flight request has resolved. Call after Stop.
func (b *Board) Wait() {
	for _, w := range b.Widgets() {
		w.Wait()
	}
}

// LastUpdated returns the most recent successful refresh across the board.
func (b *Board) LastUpdated() time.Time {
	var latest time.Time
	for _, t := range []time.Time{
		b.Todos.Snapshot().LastUpdated,
		b.Calendar.Snapshot().LastUpdated,
		b.Reviews.Snapshot().LastUpdated,
		b.MyPRs.Snapshot().LastUpdated,
		b.JiraTasks.Snapshot().LastUpdated,
		b.Notifications.Snapshot().LastUpdated,
	} {
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}

// Failing returns the names of list widgets whose last fetch failed.
func (b *Board) Failing() []string {
	var names []string
	add := func(name string, err error) {
		if err != nil {
			names = append(names, name)
		}
	}
	add(b.Todos.Name(), b.Todos.Snapshot().LastError)
	add(b.Calendar.Name(), b.Calendar.Snapshot().LastError)
	add(b.Reviews.Name(), b.Reviews.Snapshot().LastError)
	add(b.MyPRs.Name(), b.MyPRs.Snapshot().LastError)
	add(b.JiraTasks.Name(), b.JiraTasks.Snapshot().LastError)
	add(b.Notifications.Name(), b.Notifications.Snapshot().LastError)
	return names
}
