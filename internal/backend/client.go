package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Dashboard defines every backend call the widgets depend on.
// This interface is implemented by *Client and can be used for testing.
type Dashboard interface {
	Todos(ctx context.Context) ([]Todo, error)
	CreateTodo(ctx context.Context, title string) (Todo, error)
	UpdateTodo(ctx context.Context, id int64, update TodoUpdate) error
	DeleteTodo(ctx context.Context, id int64) error
	ReorderTodos(ctx context.Context, order []int64) error

	CalendarEvents(ctx context.Context) ([]CalendarEvent, error)
	ReviewRequests(ctx context.Context) ([]PullRequest, error)
	MyPullRequests(ctx context.Context) ([]PullRequest, error)
	JiraTasks(ctx context.Context) ([]JiraIssue, error)
	JiraNotifications(ctx context.Context) ([]JiraIssue, error)

	GmailUnread(ctx context.Context) (UnreadCount, error)
	DemoMode(ctx context.Context) (DemoMode, error)
	GoogleAuthStatus(ctx context.Context) (AuthStatus, error)
}

// Ensure Client implements Dashboard at compile time.
var _ Dashboard = (*Client)(nil)

// Error classes returned by the client. Match with errors.Is.
var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unexpected status")
	ErrDecode    = errors.New("malformed response")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Path string
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Text)
}

// Unwrap lets errors.Is(err, ErrStatus) match.
func (e *StatusError) Unwrap() error { return ErrStatus }

// Client talks to the dashboard backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Requests have no timeout unless
// one is set; zero disables it again.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a structured logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultUserAgent = "perch/0.1"
)

// NewClient builds a Client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Todos lists every todo in display order.
func (c *Client) Todos(ctx context.Context) ([]Todo, error) {
	var payload []Todo
	if err := c.do(ctx, http.MethodGet, "/api/v1/todos/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateTodo creates a todo and returns the stored record.
func (c *Client) CreateTodo(ctx context.Context, title string) (Todo, error) {
	var created Todo
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	if err := c.do(ctx, http.MethodPost, "/api/v1/todos/", body, &created); err != nil {
		return Todo{}, err
	}
	return created, nil
}

// UpdateTodo replaces the title and completion flag of a todo.
func (c *Client) UpdateTodo(ctx context.Context, id int64, update TodoUpdate) error {
	return c.do(ctx, http.MethodPut, todoPath(id), update, nil)
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

// ReorderTodos persists the complete ordered list of todo ids.
func (c *Client) ReorderTodos(ctx context.Context, order []int64) error {
	if order == nil {
		order = []int64{}
	}
	body := struct {
		Order []int64 `json:"order"`
	}{Order: order}
	return c.do(ctx, http.MethodPost, "/api/v1/todos/reorder", body, nil)
}

// CalendarEvents lists today's calendar events.
func (c *Client) CalendarEvents(ctx context.Context) ([]CalendarEvent, error) {
	var payload []CalendarEvent
	if err := c.do(ctx, http.MethodGet, "/api/v1/calendar/events", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ReviewRequests lists pull requests awaiting the user's review.
func (c *Client) ReviewRequests(ctx context.Context) ([]PullRequest, error) {
	return c.pullRequests(ctx, "/api/v1/github/prs")
}

// MyPullRequests lists the user's own open pull requests.
func (c *Client) MyPullRequests(ctx context.Context) ([]PullRequest, error) {
	return c.pullRequests(ctx, "/api/v1/github/my-prs")
}

func (c *Client) pullRequests(ctx context.Context, path string) ([]PullRequest, error) {
	var payload []PullRequest
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// JiraTasks lists Jira issues assigned to the user.
func (c *Client) JiraTasks(ctx context.Context) ([]JiraIssue, error) {
	return c.jiraIssues(ctx, "/api/v1/jira/tasks")
}

// JiraNotifications lists Jira issues where the user is mentioned or watching.
func (c *Client) JiraNotifications(ctx context.Context) ([]JiraIssue, error) {
	return c.jiraIssues(ctx, "/api/v1/jira/notifications")
}

func (c *Client) jiraIssues(ctx context.Context, path string) ([]JiraIssue, error) {
	var payload []JiraIssue
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GmailUnread returns the unread inbox count.
func (c *Client) GmailUnread(ctx context.Context) (UnreadCount, error) {
	var payload UnreadCount
	if err := c.do(ctx, http.MethodGet, "/api/v1/gmail/unread", nil, &payload); err != nil {
		return UnreadCount{}, err
	}
	return payload, nil
}

// DemoMode reports whether the backend serves mock data.
func (c *Client) DemoMode(ctx context.Context) (DemoMode, error) {
	var payload DemoMode
	if err := c.do(ctx, http.MethodGet, "/api/v1/demo-mode", nil, &payload); err != nil {
		return DemoMode{}, err
	}
	return payload, nil
}

// GoogleAuthStatus reports the state of the backend's Google authorization.
func (c *Client) GoogleAuthStatus(ctx context.Context) (AuthStatus, error) {
	var payload AuthStatus
	if err := c.do(ctx, http.MethodGet, "/api/v1/google/auth-status", nil, &payload); err != nil {
		return AuthStatus{}, err
	}
	return payload, nil
}

func todoPath(id int64) string {
	return "/api/v1/todos/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := ulid.Make().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request complete",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: path, Code: resp.StatusCode, Text: statusText(resp)}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrDecode, path, err)
	}
	return nil
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
