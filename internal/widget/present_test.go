package widget

import (
	"strings"
	"testing"
	"time"

	"github.com/five82/perch/internal/backend"
)

func TestLabelForeground(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{"d73a4a", white}, // luminance ~107
		{"#d73a4a", white},
		{"ffffff", black},
		{"000000", white},
		{"fbca04", black},
		{"7057ff", white},
		{"0e8a16", white},
		{"c5def5", black},
		{"nothex", white},
		{"", white},
	}
	for _, tt := range tests {
		if got := LabelForeground(tt.color); got != tt.want {
			t.Errorf("LabelForeground(%q) = %s, want %s", tt.color, got, tt.want)
		}
	}
}

func TestLuminance(t *testing.T) {
	lum, ok := Luminance("d73a4a")
	if !ok {
		t.Fatal("Luminance(d73a4a) not ok")
	}
	if lum < 106 || lum > 108 {
		t.Fatalf("Luminance(d73a4a) = %v, want ~107", lum)
	}
}

func TestMergeStatus(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name      string
		pr        backend.PullRequest
		want      MergeState
		wantLabel string
	}{
		{"no info", backend.PullRequest{}, MergePending, "Open"},
		{"clean", backend.PullRequest{Mergeable: &yes, MergeableState: "clean"}, MergeReady, "Clean"},
		{"clean without flag", backend.PullRequest{MergeableState: "clean"}, MergeReady, "Clean"},
		{"mergeable unstable", backend.PullRequest{Mergeable: &yes, MergeableState: "unstable"}, MergeReady, "Unstable"},
		{"mergeable blocked", backend.PullRequest{Mergeable: &yes, MergeableState: "blocked"}, MergePending, "Blocked"},
		{"conflicts", backend.PullRequest{Mergeable: &no, MergeableState: "dirty"}, MergeConflicts, "Dirty"},
		{"unknown", backend.PullRequest{MergeableState: "unknown"}, MergePending, "Unknown"},
		{"underscore", backend.PullRequest{Mergeable: &no, MergeableState: "has_hooks"}, MergeConflicts, "Has Hooks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, label := MergeStatus(tt.pr)
			if got != tt.want || label != tt.wantLabel {
				t.Fatalf("MergeStatus = (%v, %q), want (%v, %q)", got, label, tt.want, tt.wantLabel)
			}
		})
	}
}

func TestJiraStatusTone(t *testing.T) {
	tests := map[string]Tone{
		"In Progress": ToneProgress,
		"Done":        ToneDone,
		"Completed":   ToneDone,
		"Blocked":     ToneBlocked,
		"To Do":       ToneNeutral,
		"":            ToneNeutral,
	}
	for status, want := range tests {
		if got := JiraStatusTone(status); got != want {
			t.Errorf("JiraStatusTone(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestUnreadBadge(t *testing.T) {
	tests := map[int]string{-1: "", 0: "", 1: "1", 99: "99", 100: "99+", 2500: "99+"}
	for n, want := range tests {
		if got := UnreadBadge(n); got != want {
			t.Errorf("UnreadBadge(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		loading bool
		count   int
		want    RenderState
	}{
		{true, 0, StateLoading},
		{false, 0, StateEmpty},
		{true, 2, StateItems},
		{false, 2, StateItems},
	}
	for _, tt := range tests {
		if got := StateOf(tt.loading, tt.count); got != tt.want {
			t.Errorf("StateOf(%v, %d) = %v, want %v", tt.loading, tt.count, got, tt.want)
		}
	}
}

func TestAuthDialog(t *testing.T) {
	base := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	at := func(n int) time.Time { return base.Add(time.Duration(n) * time.Minute) }
	authorized := backend.AuthStatus{Status: backend.AuthAuthorized}
	expired := backend.AuthStatus{Status: backend.AuthExpired, AuthURL: "https://example.com/auth"}
	missing := backend.AuthStatus{Status: backend.AuthNotConfigured}

	var d AuthDialog
	d.Observe(authorized, at(1))
	if d.Open() {
		t.Fatal("open while authorized")
	}
	d.Observe(expired, at(2))
	if !d.Open() {
		t.Fatal("not open after authorized -> expired")
	}
	d.Dismiss()
	d.Observe(expired, at(3))
	if d.Open() {
		t.Fatal("reopened for unchanged status")
	}
	d.Observe(missing, at(4))
	if !d.Open() {
		t.Fatal("not open after expired -> not_configured")
	}
	d.Dismiss()
	d.Observe(missing, at(4))
	if d.Open() {
		t.Fatal("reopened for a repeated observation")
	}
	d.Observe(authorized, at(5))
	d.Observe(expired, at(6))
	if !d.Open() {
		t.Fatal("not open after authorized again -> expired")
	}

	var first AuthDialog
	first.Observe(missing, at(1))
	if !first.Open() {
		t.Fatal("first non-authorized observation should open")
	}
}

func TestAuthCopy(t *testing.T) {
	title, body := AuthCopy(backend.AuthStatus{Status: backend.AuthExpired, AuthURL: "https://x"})
	if title != "Google Authorization Expired" || body == "" {
		t.Fatalf("expired copy = %q / %q", title, body)
	}
	title, body = AuthCopy(backend.AuthStatus{Status: backend.AuthNotConfigured})
	if title != "Google Not Configured" {
		t.Fatalf("title = %q", title)
	}
	if want := "Unable to generate authorization URL"; !strings.Contains(body, want) {
		t.Fatalf("body %q missing %q", body, want)
	}
}
