package backend

import (
	"strings"
	"time"
)

// localTimestampLayout matches naive ISO timestamps emitted without a zone.
const localTimestampLayout = "2006-01-02T15:04:05"

// Todo mirrors a todo record from /api/v1/todos/.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// Key returns the stable list key.
func (t Todo) Key() int64 { return t.ID }

// TodoUpdate is the PUT body for a todo.
type TodoUpdate struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Label is a GitHub label attached to a pull request.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PullRequest mirrors the GitHub payloads from /api/v1/github/*.
// Mergeable and MergeableState are only populated by /my-prs.
type PullRequest struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Repo           string  `json:"repo"`
	Author         string  `json:"author"`
	CreatedAt      string  `json:"created_at"`
	State          string  `json:"state"`
	Mergeable      *bool   `json:"mergeable,omitempty"`
	MergeableState string  `json:"mergeable_state,omitempty"`
	Labels         []Label `json:"labels,omitempty"`
}

// Key returns the stable list key.
func (p PullRequest) Key() string { return p.URL }

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (p PullRequest) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// JiraIssue mirrors a Jira issue from /api/v1/jira/*.
type JiraIssue struct {
	IssueKey string `json:"key"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Assignee string `json:"assignee"`
	URL      string `json:"url"`
}

// Key returns the issue key (e.g. PROJ-12).
func (j JiraIssue) Key() string { return j.IssueKey }

// CalendarEvent mirrors an event from /api/v1/calendar/events.
type CalendarEvent struct {
	Summary   string `json:"summary"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location,omitempty"`
	HTMLLink  string `json:"html_link"`
}

// Key returns the stable list key. Recurring events share a link, so the
// start time is part of it.
func (e CalendarEvent) Key() string { return e.HTMLLink + "@" + e.StartTime }

// ParsedStart returns the parsed start time.
func (e CalendarEvent) ParsedStart() time.Time { return parseTime(e.StartTime) }

// ParsedEnd returns the parsed end time.
func (e CalendarEvent) ParsedEnd() time.Time { return parseTime(e.EndTime) }

// UnreadCount mirrors /api/v1/gmail/unread.
type UnreadCount struct {
	Count int `json:"count"`
}

// DemoMode mirrors /api/v1/demo-mode.
type DemoMode struct {
	Enabled bool `json:"demo_mode"`
}

// AuthState enumerates the Google authorization states.
type AuthState string

const (
	AuthAuthorized    AuthState = "authorized"
	AuthExpired       AuthState = "expired"
	AuthNotConfigured AuthState = "not_configured"
)

// AuthStatus mirrors /api/v1/google/auth-status.
type AuthStatus struct {
	Status  AuthState `json:"status"`
	Message string    `json:"message"`
	AuthURL string    `json:"auth_url"`
}

// Authorized reports whether Google access is currently usable.
func (a AuthStatus) Authorized() bool {
	return AuthState(strings.TrimSpace(string(a.Status))) == AuthAuthorized
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range []string{localTimestampLayout, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
