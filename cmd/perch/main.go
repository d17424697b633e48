// Package main is the entry point for the perch dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/perch/internal/app"
	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/config"
)

// Version information set at build time.
var version = "0.1.0"

// Global flags.
var (
	configPath string
	apiURL     string
)

func newRootCmd() *cobra.Command {
	var (
		prefsPath   string
		pollEvery   time.Duration
		metricsAddr string
		debug       bool
	)

	root := &cobra.Command{
		Use:   "perch",
		Short: "Terminal dashboard for todos, calendar, pull requests, Jira and Gmail",
		Long: `perch shows todos, today's calendar, GitHub pull requests, Jira issues
and the Gmail unread count in one terminal dashboard. Every widget polls the
dashboard backend on its own and todo edits apply instantly.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath:   configPath,
				PrefsPath:    prefsPath,
				APIURL:       apiURL,
				PollInterval: pollEvery,
				MetricsAddr:  metricsAddr,
				Debug:        debug,
			})
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/perch/config.toml)")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "Dashboard backend URL (overrides config and PERCH_API_URL)")
	root.Flags().StringVar(&prefsPath, "prefs", "", "Path to prefs file (default ~/.config/perch/prefs.toml)")
	root.Flags().DurationVar(&pollEvery, "poll", 0, "Widget refresh interval (default from config, 5m)")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	root.Flags().BoolVar(&debug, "debug", false, "Log every backend request")

	root.AddCommand(newTodoCmd())
	root.AddCommand(newSummaryCmd())

	return root
}

// newClient builds a backend client from the config file and --api-url.
func newClient() (*backend.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	client, err := backend.NewClient(cfg.APIURL, backend.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	return client, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "perch: %v\n", err)
		return 1
	}
	return 0
}
