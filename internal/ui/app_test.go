package ui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/prefs"
	"github.com/five82/perch/internal/widget"
)

// stubAPI serves canned JSON bodies keyed by "METHOD path".
type stubAPI struct {
	mu     sync.Mutex
	routes map[string]string
	seen   []string
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	route := r.Method + " " + r.URL.Path

	s.mu.Lock()
	s.seen = append(s.seen, route+" "+string(body))
	resp, ok := s.routes[route]
	s.mu.Unlock()

	if !ok {
		resp = `{}`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func (s *stubAPI) requests(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.seen {
		if strings.HasPrefix(r, prefix) {
			out = append(out, r)
		}
	}
	return out
}

type harness struct {
	api    *stubAPI
	board  *widget.Board
	opened []string
	copied []string
}

func newHarness(t *testing.T, overrides map[string]string) *harness {
	t.Helper()
	api := &stubAPI{routes: map[string]string{
		"GET /api/v1/todos/":             `[{"id":1,"title":"Write report","completed":false,"order":0},{"id":2,"title":"Call bank","completed":false,"order":1}]`,
		"GET /api/v1/calendar/events":    `[]`,
		"GET /api/v1/github/prs":         `[]`,
		"GET /api/v1/github/my-prs":      `[]`,
		"GET /api/v1/jira/tasks":         `[]`,
		"GET /api/v1/jira/notifications": `[]`,
		"GET /api/v1/gmail/unread":       `{"count":3}`,
		"GET /api/v1/demo-mode":          `{"demo_mode":false}`,
		"GET /api/v1/google/auth-status": `{"status":"authorized","message":"","auth_url":""}`,
		"POST /api/v1/todos/":            `{"id":9,"title":"Buy milk","completed":false,"order":2}`,
	}}
	for route, body := range overrides {
		api.routes[route] = body
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	board := widget.NewBoard(client, widget.Config{Interval: time.Hour, AuthInterval: time.Hour})
	board.Start(t.Context())
	t.Cleanup(func() {
		board.Stop()
		board.Wait()
	})

	waitFor(t, "initial load", func() bool {
		return !board.Todos.Snapshot().Loading && !board.Reviews.Snapshot().Loading &&
			!board.Calendar.Snapshot().Loading && !board.Unread.Snapshot().Loading
	})
	return &harness{api: api, board: board}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (h *harness) model(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	m := New(Options{
		Context:   t.Context(),
		Board:     h.board,
		Config:    &cfg,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		OpenURL: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
		CopyText: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
	})
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCyclesFocus(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != panelCalendar {
		t.Fatalf("focus after tab = %v, want calendar", m.focus)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != panelNotifications {
		t.Fatalf("focus after two shift+tab = %v, want notifications", m.focus)
	}
}

func TestToggleKeyMarksTodoImmediately(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)

	m = send(m, runes("j"))
	send(m, runes("x"))

	todos := h.board.Todos.Snapshot().Data
	if !todos[1].Completed {
		t.Fatalf("todo 2 not completed after x: %+v", todos)
	}
	h.board.Todos.Wait()
	puts := h.api.requests("PUT /api/v1/todos/2")
	if len(puts) != 1 || !strings.Contains(puts[0], `"completed":true`) {
		t.Fatalf("PUT requests = %v", puts)
	}
}

func TestAddTodoThroughInput(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)

	m = send(m, runes("a"))
	if m.inputMode != inputAdd {
		t.Fatalf("inputMode = %v, want add", m.inputMode)
	}
	if !strings.Contains(m.View(), "Add todo") {
		t.Fatalf("View() missing input modal")
	}
	for _, r := range "Buy milk" {
		m = send(m, runes(string(r)))
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.inputMode != inputNone {
		t.Fatalf("input still open after enter")
	}
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	m = send(m, cmd())

	todos := h.board.Todos.Snapshot().Data
	if len(todos) != 3 || todos[2].Title != "Buy milk" {
		t.Fatalf("todos after add = %+v", todos)
	}
	if m.selected[panelTodos] != 2 {
		t.Fatalf("selection = %d, want 2", m.selected[panelTodos])
	}
}

func TestBlankInputIsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)

	m = send(m, runes("a"))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd != nil || m.inputMode != inputAdd {
		t.Fatalf("blank submit: cmd=%v mode=%v", cmd != nil, m.inputMode)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inputMode != inputNone {
		t.Fatal("esc did not close input")
	}
}

func TestOpenAndCopyUseItemURL(t *testing.T) {
	h := newHarness(t, map[string]string{
		"GET /api/v1/github/prs": `[{"title":"Fix login","url":"https://github.com/acme/app/pull/7","repo":"acme/app","author":"sam","created_at":"2026-10-16T09:00:00Z","state":"open"}]`,
	})
	m := h.model(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != panelReviews {
		t.Fatalf("focus = %v, want reviews", m.focus)
	}
	m = send(m, runes("o"))
	send(m, runes("y"))

	want := "https://github.com/acme/app/pull/7"
	if len(h.opened) != 1 || h.opened[0] != want {
		t.Fatalf("opened = %v, want [%s]", h.opened, want)
	}
	if len(h.copied) != 1 || h.copied[0] != want {
		t.Fatalf("copied = %v, want [%s]", h.copied, want)
	}
}

func TestQuickLinkKeyOpensConfiguredURL(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)

	send(m, runes("1"))
	if len(h.opened) != 1 || h.opened[0] != config.DefaultQuickLinks[0].URL {
		t.Fatalf("opened = %v, want %s", h.opened, config.DefaultQuickLinks[0].URL)
	}
}

func TestDashboardShowsEmptyMessagesAndLinks(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)

	view := m.View()
	for _, want := range []string{"No pending reviews.", "No events today.", "Write report", "Gmail"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestAuthDialogDismiss(t *testing.T) {
	h := newHarness(t, map[string]string{
		"GET /api/v1/google/auth-status": `{"status":"expired","message":"Token expired","auth_url":"https://accounts.example.com/auth"}`,
	})
	waitFor(t, "auth dialog", h.board.AuthDialog.Open)
	m := h.model(t)

	if view := m.View(); !strings.Contains(view, "Google Authorization Expired") {
		t.Fatalf("View() missing dialog title")
	}
	m = send(m, runes("o"))
	if len(h.opened) != 1 || h.opened[0] != "https://accounts.example.com/auth" {
		t.Fatalf("opened = %v", h.opened)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if h.board.AuthDialog.Open() {
		t.Fatal("dialog still open after esc")
	}
	if strings.Contains(m.View(), "Google Authorization Expired") {
		t.Fatal("dismissed dialog still rendered")
	}
}

func TestCycleThemePersists(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)

	m = send(m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" || p.Focus != "todos" {
		t.Fatalf("prefs = %+v", p)
	}
}

func TestLogsViewRendersRecords(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)
	m.logPath = filepath.Join(t.TempDir(), "perch.log")

	m = send(m, runes("L"))
	if m.currentView != ViewLogs {
		t.Fatalf("view = %v, want logs", m.currentView)
	}
	m = send(m, logLinesMsg{lines: []string{
		`{"time":"2026-10-17T09:30:00Z","level":"WARN","msg":"poll failed","widget":"reviews"}`,
	}})
	view := m.View()
	for _, want := range []string{"Diagnostics", "poll failed", "widget="} {
		if !strings.Contains(view, want) {
			t.Errorf("logs view missing %q", want)
		}
	}
	m = send(m, runes("L"))
	if m.currentView != ViewDashboard {
		t.Fatal("L did not return to dashboard")
	}
}

func TestHeaderShowsUnreadBadgeWithoutMailQuickLink(t *testing.T) {
	h := newHarness(t, map[string]string{
		"GET /api/v1/gmail/unread": `{"count":42}`,
	})

	tests := []struct {
		name  string
		links []config.QuickLink
	}{
		{"other links", []config.QuickLink{{Name: "Jira", URL: "https://jira.example.com"}}},
		{"no links", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := h.model(t)
			m.config.QuickLinks = tt.links
			header := m.renderHeader()
			if !strings.Contains(header, "Gmail") || !strings.Contains(header, "42") {
				t.Fatalf("header = %q, want Gmail with 42", header)
			}
		})
	}
}

func TestHeaderCapsUnreadBadge(t *testing.T) {
	h := newHarness(t, map[string]string{
		"GET /api/v1/gmail/unread": `{"count":150}`,
	})
	if header := h.model(t).renderHeader(); !strings.Contains(header, "99+") {
		t.Fatalf("header = %q, want 99+", header)
	}
}

func TestHeaderDemoBadge(t *testing.T) {
	h := newHarness(t, nil)
	if header := h.model(t).renderHeader(); strings.Contains(header, "DEMO") {
		t.Fatalf("header = %q, want no DEMO badge", header)
	}

	h = newHarness(t, map[string]string{
		"GET /api/v1/demo-mode": `{"demo_mode":true}`,
	})
	waitFor(t, "demo mode", func() bool { return h.board.Demo.Snapshot().Data.Enabled })
	if header := h.model(t).renderHeader(); !strings.Contains(header, "DEMO") {
		t.Fatalf("header = %q, want DEMO badge", header)
	}
}

func TestMailKeyOpensGmail(t *testing.T) {
	h := newHarness(t, nil)
	m := h.model(t)
	m.config.QuickLinks = nil

	send(m, runes("m"))
	if len(h.opened) != 1 || h.opened[0] != config.GmailURL {
		t.Fatalf("opened = %v, want [%s]", h.opened, config.GmailURL)
	}
}

func TestProgramStaysResponsiveAfterTodoEdit(t *testing.T) {
	h := newHarness(t, nil)
	p := tea.NewProgram(h.model(t),
		tea.WithContext(t.Context()),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	stop := forwardBoardChanges(h.board, p.Send)
	defer stop()

	type result struct {
		model tea.Model
		err   error
	}
	done := make(chan result, 1)
	go func() {
		final, err := p.Run()
		done <- result{final, err}
	}()
	go func() {
		p.Send(runes("x"))
		p.Send(runes("j"))
		p.Send(tea.QuitMsg{})
	}()

	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("Run: %v", res.err)
		}
		if got := res.model.(Model).selected[panelTodos]; got != 1 {
			t.Fatalf("selection after j = %d, want 1", got)
		}
	case <-time.After(2 * time.Second):
		p.Kill()
		t.Fatal("program stopped handling messages after a todo edit")
	}

	if todos := h.board.Todos.Snapshot().Data; !todos[0].Completed {
		t.Fatalf("todo 1 not completed: %+v", todos)
	}
	h.board.Todos.Wait()
	if puts := h.api.requests("PUT /api/v1/todos/1"); len(puts) != 1 {
		t.Fatalf("PUT requests = %v", puts)
	}
}
