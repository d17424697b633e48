package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/widget"
)

// chip is an inline colored badge. An empty fg picks a contrasting text
// color for bg.
type chip struct {
	text string
	fg   string
	bg   string
	tone string
}

// item is the display form of one list entry, independent of widget type.
type item struct {
	key     string
	url     string
	title   string
	marker  string
	tone    string
	done    bool
	meta    string
	chips   []chip
	detail  []string
	todoID  int64
	hasTodo bool
}

func todoItems(todos []backend.Todo) []item {
	out := make([]item, 0, len(todos))
	for _, t := range todos {
		marker := "[ ]"
		if t.Completed {
			marker = "[x]"
		}
		out = append(out, item{
			key:     fmt.Sprintf("%d", t.ID),
			title:   t.Title,
			marker:  marker,
			done:    t.Completed,
			todoID:  t.ID,
			hasTodo: true,
		})
	}
	return out
}

func eventItems(events []backend.CalendarEvent) []item {
	out := make([]item, 0, len(events))
	for _, e := range events {
		it := item{
			key:    e.Key(),
			url:    e.HTMLLink,
			title:  e.Summary,
			marker: "●",
			tone:   "progress",
			meta:   timeRange(e.ParsedStart(), e.ParsedEnd()),
		}
		if e.Location != "" {
			it.detail = append(it.detail, "Location: "+e.Location)
		}
		if e.HTMLLink != "" {
			it.detail = append(it.detail, e.HTMLLink)
		}
		out = append(out, it)
	}
	return out
}

func reviewItems(prs []backend.PullRequest, now time.Time) []item {
	out := make([]item, 0, len(prs))
	for _, pr := range prs {
		it := item{
			key:    pr.Key(),
			url:    pr.URL,
			title:  pr.Title,
			marker: "◆",
			tone:   "neutral",
			meta:   prMeta(pr, now),
			detail: prDetail(pr),
		}
		for _, l := range pr.Labels {
			bg := "#" + strings.TrimPrefix(l.Color, "#")
			it.chips = append(it.chips, chip{text: l.Name, fg: widget.LabelForeground(l.Color), bg: bg})
		}
		out = append(out, it)
	}
	return out
}

func myPRItems(prs []backend.PullRequest, now time.Time) []item {
	out := make([]item, 0, len(prs))
	for _, pr := range prs {
		state, label := widget.MergeStatus(pr)
		marker := "…"
		switch state {
		case widget.MergeReady:
			marker = "✓"
		case widget.MergeConflicts:
			marker = "✗"
		}
		out = append(out, item{
			key:    pr.Key(),
			url:    pr.URL,
			title:  pr.Title,
			marker: marker,
			tone:   state.String(),
			meta:   prMeta(pr, now),
			chips:  []chip{{text: label, tone: state.String()}},
			detail: prDetail(pr),
		})
	}
	return out
}

func prMeta(pr backend.PullRequest, now time.Time) string {
	parts := []string{pr.Repo}
	if pr.Author != "" {
		parts = append(parts, "@"+pr.Author)
	}
	if created := pr.ParsedCreatedAt(); !created.IsZero() {
		parts = append(parts, relativeTime(created, now))
	}
	return strings.Join(parts, " · ")
}

func prDetail(pr backend.PullRequest) []string {
	var lines []string
	if pr.State != "" {
		lines = append(lines, "State: "+pr.State)
	}
	if pr.URL != "" {
		lines = append(lines, pr.URL)
	}
	return lines
}

func jiraItems(issues []backend.JiraIssue) []item {
	out := make([]item, 0, len(issues))
	for _, issue := range issues {
		tone := toneName(widget.JiraStatusTone(issue.Status))
		it := item{
			key:    issue.Key(),
			url:    issue.URL,
			title:  issue.IssueKey + " " + issue.Summary,
			marker: "■",
			tone:   tone,
		}
		if issue.Status != "" {
			it.chips = append(it.chips, chip{text: issue.Status, tone: tone})
		}
		var meta []string
		if issue.Priority != "" {
			meta = append(meta, issue.Priority)
		}
		if issue.Assignee != "" {
			meta = append(meta, issue.Assignee)
		}
		it.meta = strings.Join(meta, " · ")
		if issue.URL != "" {
			it.detail = append(it.detail, issue.URL)
		}
		out = append(out, it)
	}
	return out
}

func toneName(t widget.Tone) string {
	switch t {
	case widget.ToneProgress:
		return "progress"
	case widget.ToneDone:
		return "done"
	case widget.ToneBlocked:
		return "blocked"
	default:
		return "neutral"
	}
}
