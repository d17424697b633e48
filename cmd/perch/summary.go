package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/widget"
)

// summaryConcurrency caps simultaneous backend requests.
const summaryConcurrency = 4

// summaryRow is one line of output. Each fetch owns exactly one row.
type summaryRow struct {
	label string
	value string
	err   error
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Fetch every widget once and print counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			rows := collectSummary(cmd.Context(), client)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			failed := 0
			for _, row := range rows {
				value := row.value
				if row.err != nil {
					failed++
					value = "error: " + row.err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\n", row.label, value)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d endpoints failed", failed, len(rows))
			}
			return nil
		},
	}
}

// collectSummary queries every endpoint concurrently. A failing endpoint
// only affects its own row.
func collectSummary(ctx context.Context, api backend.Dashboard) []summaryRow {
	rows := []summaryRow{
		{label: "Todos"},
		{label: "Events today"},
		{label: "Reviews requested"},
		{label: "My open PRs"},
		{label: "Jira tasks"},
		{label: "Jira notifications"},
		{label: "Gmail unread"},
		{label: "Google auth"},
		{label: "Demo mode"},
	}
	fetchers := []func(context.Context) (string, error){
		func(ctx context.Context) (string, error) {
			todos, err := api.Todos(ctx)
			if err != nil {
				return "", err
			}
			done := 0
			for _, t := range todos {
				if t.Completed {
					done++
				}
			}
			return fmt.Sprintf("%d (%d done)", len(todos), done), nil
		},
		func(ctx context.Context) (string, error) {
			events, err := api.CalendarEvents(ctx)
			return strconv.Itoa(len(events)), err
		},
		func(ctx context.Context) (string, error) {
			prs, err := api.ReviewRequests(ctx)
			return strconv.Itoa(len(prs)), err
		},
		func(ctx context.Context) (string, error) {
			prs, err := api.MyPullRequests(ctx)
			if err != nil {
				return "", err
			}
			counts := map[widget.MergeState]int{}
			for _, pr := range prs {
				state, _ := widget.MergeStatus(pr)
				counts[state]++
			}
			return fmt.Sprintf("%d (%d ready, %d conflicts)", len(prs),
				counts[widget.MergeReady], counts[widget.MergeConflicts]), nil
		},
		func(ctx context.Context) (string, error) {
			issues, err := api.JiraTasks(ctx)
			return strconv.Itoa(len(issues)), err
		},
		func(ctx context.Context) (string, error) {
			issues, err := api.JiraNotifications(ctx)
			return strconv.Itoa(len(issues)), err
		},
		func(ctx context.Context) (string, error) {
			unread, err := api.GmailUnread(ctx)
			if err != nil {
				return "", err
			}
			if badge := widget.UnreadBadge(unread.Count); badge != "" {
				return badge, nil
			}
			return "0", nil
		},
		func(ctx context.Context) (string, error) {
			status, err := api.GoogleAuthStatus(ctx)
			return string(status.Status), err
		},
		func(ctx context.Context) (string, error) {
			demo, err := api.DemoMode(ctx)
			if demo.Enabled {
				return "on", err
			}
			return "off", err
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)
	for i, fetch := range fetchers {
		g.Go(func() error {
			rows[i].value, rows[i].err = fetch(gctx)
			return nil
		})
	}
	_ = g.Wait()
	return rows
}
