package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/poll"
	"github.com/five82/perch/internal/prefs"
	"github.com/five82/perch/internal/ui"
	"github.com/five82/perch/internal/widget"
)

// Options configure the perch application. Zero values defer to the config
// file.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/perch/prefs.toml
	APIURL       string
	PollInterval time.Duration
	MetricsAddr  string
	Debug        bool
}

// Run boots the perch TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger, closeLog, err := OpenLogger(cfg.LogPath(), level)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed, using defaults", "err", err)
	}

	client, err := backend.NewClient(cfg.APIURL,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	var metrics *poll.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = poll.NewMetrics(reg)
		srv, err := ServeMetrics(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer srv.Close()
	}

	board := widget.NewBoard(client, widget.Config{
		Interval: cfg.PollInterval,
		Logger:   logger,
		Metrics:  metrics,
	})

	logger.Info("perch starting", "api_url", client.BaseURL(), "poll_interval", cfg.PollInterval.String())
	board.Start(ctx)
	defer func() {
		board.Stop()
		board.Wait()
		logger.Info("perch stopped")
	}()

	return ui.Run(ui.Options{
		Context:   ctx,
		Board:     board,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		Focus:     userPrefs.Focus,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogPath(),
		Logger:    logger,
	})
}

// applyOverrides lets command-line flags win over the config file.
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.PollInterval > 0 {
		cfg.PollInterval = opts.PollInterval
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
}
