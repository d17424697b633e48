package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:8002/ignored?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:8002" {
		t.Fatalf("url = %q, want http://example.com:8002", u.String())
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_RejectsMissingHost(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want error")
	}
}

func TestClient_TodoEndpoints(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
		body   string
	}
	var (
		mu                         sync.Mutex
		calls                      []call
		gotUserAgent, gotRequestID string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, call{r.Method, r.URL.Path, strings.TrimSpace(string(raw))})
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/todos/":
			_ = json.NewEncoder(w).Encode([]Todo{{ID: 1, Title: "Buy milk", Order: 0}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/todos/":
			_ = json.NewEncoder(w).Encode(Todo{ID: 2, Title: "X", Order: 1})
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/todos/1":
			_ = json.NewEncoder(w).Encode(Todo{ID: 1, Title: "Buy milk", Completed: true})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/todos/1":
			_, _ = w.Write([]byte(`{"ok":true}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/todos/reorder":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	todos, err := c.Todos(ctx)
	if err != nil {
		t.Fatalf("Todos returned error: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "Buy milk" || todos[0].Completed {
		t.Fatalf("Todos = %#v, want one unchecked Buy milk", todos)
	}

	created, err := c.CreateTodo(ctx, "X")
	if err != nil {
		t.Fatalf("CreateTodo returned error: %v", err)
	}
	if created.ID != 2 || created.Order != 1 {
		t.Fatalf("CreateTodo = %#v, want id=2 order=1", created)
	}

	if err := c.UpdateTodo(ctx, 1, TodoUpdate{Title: "Buy milk", Completed: true}); err != nil {
		t.Fatalf("UpdateTodo returned error: %v", err)
	}
	if err := c.DeleteTodo(ctx, 1); err != nil {
		t.Fatalf("DeleteTodo returned error: %v", err)
	}
	if err := c.ReorderTodos(ctx, []int64{3, 2, 1}); err != nil {
		t.Fatalf("ReorderTodos returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []call{
		{http.MethodGet, "/api/v1/todos/", ""},
		{http.MethodPost, "/api/v1/todos/", `{"title":"X"}`},
		{http.MethodPut, "/api/v1/todos/1", `{"title":"Buy milk","completed":true}`},
		{http.MethodDelete, "/api/v1/todos/1", ""},
		{http.MethodPost, "/api/v1/todos/reorder", `{"order":[3,2,1]}`},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %#v, want %d calls", calls, len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %#v, want %#v", i, calls[i], want[i])
		}
	}
	if !strings.HasPrefix(gotUserAgent, "perch/") {
		t.Fatalf("User-Agent = %q, want perch/*", gotUserAgent)
	}
	if len(gotRequestID) != 26 {
		t.Fatalf("X-Request-ID = %q, want a ULID", gotRequestID)
	}
}

func TestClient_ReadOnlyEndpoints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/calendar/events":
			_, _ = w.Write([]byte(`[{"summary":"Standup","start_time":"2026-10-17T09:00:00Z","end_time":"2026-10-17T09:15:00Z","html_link":"https://cal/1"}]`))
		case "/api/v1/github/prs":
			_, _ = w.Write([]byte(`[]`))
		case "/api/v1/github/my-prs":
			_, _ = w.Write([]byte(`[{"title":"Fix","url":"https://gh/1","repo":"r","author":"me","created_at":"2026-10-16T10:00:00Z","state":"open","mergeable":false,"mergeable_state":"dirty","labels":[{"name":"bug","color":"d73a4a"}]}]`))
		case "/api/v1/jira/tasks", "/api/v1/jira/notifications":
			_, _ = w.Write([]byte(`[{"key":"OPS-1","summary":"Rotate keys","status":"In Progress","priority":"High","assignee":"me","url":"https://jira/OPS-1"}]`))
		case "/api/v1/gmail/unread":
			_, _ = w.Write([]byte(`{"count":120}`))
		case "/api/v1/demo-mode":
			_, _ = w.Write([]byte(`{"demo_mode":true}`))
		case "/api/v1/google/auth-status":
			_, _ = w.Write([]byte(`{"status":"expired","message":"token expired","auth_url":"https://accounts.example/auth"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	events, err := c.CalendarEvents(ctx)
	if err != nil || len(events) != 1 || events[0].ParsedStart().Hour() != 9 {
		t.Fatalf("CalendarEvents = %#v, %v", events, err)
	}

	reviews, err := c.ReviewRequests(ctx)
	if err != nil || len(reviews) != 0 {
		t.Fatalf("ReviewRequests = %#v, %v", reviews, err)
	}

	mine, err := c.MyPullRequests(ctx)
	if err != nil || len(mine) != 1 {
		t.Fatalf("MyPullRequests = %#v, %v", mine, err)
	}
	if mine[0].Mergeable == nil || *mine[0].Mergeable || mine[0].MergeableState != "dirty" {
		t.Fatalf("mergeable fields = %#v", mine[0])
	}
	if len(mine[0].Labels) != 1 || mine[0].Labels[0].Color != "d73a4a" {
		t.Fatalf("labels = %#v", mine[0].Labels)
	}

	tasks, err := c.JiraTasks(ctx)
	if err != nil || len(tasks) != 1 || tasks[0].Key() != "OPS-1" {
		t.Fatalf("JiraTasks = %#v, %v", tasks, err)
	}
	notes, err := c.JiraNotifications(ctx)
	if err != nil || len(notes) != 1 {
		t.Fatalf("JiraNotifications = %#v, %v", notes, err)
	}

	unread, err := c.GmailUnread(ctx)
	if err != nil || unread.Count != 120 {
		t.Fatalf("GmailUnread = %#v, %v", unread, err)
	}
	demo, err := c.DemoMode(ctx)
	if err != nil || !demo.Enabled {
		t.Fatalf("DemoMode = %#v, %v", demo, err)
	}
	auth, err := c.GoogleAuthStatus(ctx)
	if err != nil {
		t.Fatalf("GoogleAuthStatus returned error: %v", err)
	}
	if auth.Status != AuthExpired || auth.Authorized() || auth.AuthURL == "" {
		t.Fatalf("GoogleAuthStatus = %#v", auth)
	}
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/todos/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/v1/google/auth-status":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Todos(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Todos error = %v, want ErrDecode", err)
	}

	_, err = c.GoogleAuthStatus(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || !errors.Is(err, ErrStatus) {
		t.Fatalf("GoogleAuthStatus error = %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError || err.Error() != "HTTP 500: Internal Server Error" {
		t.Fatalf("StatusError = %q, want HTTP 500: Internal Server Error", err.Error())
	}

	err = c.DeleteTodo(context.Background(), 99)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("DeleteTodo error = %v, want ErrStatus", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.CalendarEvents(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("CalendarEvents error = %v, want ErrTransport", err)
	}
}

func TestNewClient_TimeoutOnlyWhenSet(t *testing.T) {
	c, err := NewClient("localhost:8000")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http.Timeout != 0 {
		t.Fatalf("default timeout = %v, want none", c.http.Timeout)
	}
	c, err = NewClient("localhost:8000", WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v, want 5s", c.http.Timeout)
	}
}

func TestParseTime_Layouts(t *testing.T) {
	if got := parseTime(""); !got.IsZero() {
		t.Fatalf("parseTime empty = %v, want zero", got)
	}
	if got := parseTime("2026-10-17T08:30:00+02:00"); got.UTC().Hour() != 6 {
		t.Fatalf("parseTime zoned = %v, want 06:30 UTC", got)
	}
	if got := parseTime("2026-10-17T08:30:00"); got.Hour() != 8 || got.Location() != time.Local {
		t.Fatalf("parseTime naive = %v, want 08:30 local", got)
	}
	if got := parseTime("garbage"); !got.IsZero() {
		t.Fatalf("parseTime garbage = %v, want zero", got)
	}
}
