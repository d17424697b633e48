package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// QuickLink is a named shortcut shown in the dashboard header.
type QuickLink struct {
	Name string `toml:"name" json:"name"`
	URL  string `toml:"url" json:"url"`
}

// Config captures everything perch needs at startup.
type Config struct {
	APIURL         string
	LogDir         string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	MetricsAddr    string
	QuickLinks     []QuickLink
}

const (
	defaultConfigPath     = "~/.config/perch/config.toml"
	defaultLogDir         = "~/.local/state/perch"
	defaultAPIURL         = "http://localhost:8000"
	defaultRequestTimeout = 0
	defaultPollInterval   = 5 * time.Minute

	envAPIURL     = "PERCH_API_URL"
	envQuickLinks = "PERCH_QUICK_LINKS"
)

// GmailURL is opened by the fixed mail entry in the header, which is shown
// whatever quick links are configured.
const GmailURL = "https://mail.google.com"

// DefaultQuickLinks are shown when neither the file nor the environment
// configures any.
var DefaultQuickLinks = []QuickLink{
	{Name: "Calendar", URL: "https://calendar.google.com"},
	{Name: "GitHub", URL: "https://github.com/pulls"},
}

// Load locates and parses the perch config, falling back to defaults when the
// file is missing. PERCH_API_URL and PERCH_QUICK_LINKS override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if raw != nil {
		if err := apply(&cfg, *raw); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.LogDir = mustExpand(cfg.LogDir)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		LogDir:         mustExpand(defaultLogDir),
		RequestTimeout: defaultRequestTimeout,
		PollInterval:   defaultPollInterval,
		QuickLinks:     append([]QuickLink(nil), DefaultQuickLinks...),
	}
}

type fileConfig struct {
	APIURL         string      `toml:"api_url"`
	LogDir         string      `toml:"log_dir"`
	RequestTimeout string      `toml:"request_timeout"`
	PollInterval   string      `toml:"poll_interval"`
	MetricsAddr    string      `toml:"metrics_addr"`
	QuickLinks     []QuickLink `toml:"quick_links"`
}

func readFile(path string) (*fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &raw, nil
}

func apply(cfg *Config, raw fileConfig) error {
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(raw.MetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	var err error
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, cfg.RequestTimeout); err != nil {
		return err
	}
	if cfg.PollInterval, err = parseDuration("poll_interval", raw.PollInterval, cfg.PollInterval); err != nil {
		return err
	}
	if links := cleanLinks(raw.QuickLinks); len(links) > 0 {
		cfg.QuickLinks = links
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envQuickLinks)); v != "" {
		var links []QuickLink
		if err := json.Unmarshal([]byte(v), &links); err != nil {
			return fmt.Errorf("parse %s: %w", envQuickLinks, err)
		}
		cfg.QuickLinks = cleanLinks(links)
	}
	return nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", field, value)
	}
	return d, nil
}

func cleanLinks(links []QuickLink) []QuickLink {
	out := make([]QuickLink, 0, len(links))
	for _, link := range links {
		link.Name = strings.TrimSpace(link.Name)
		link.URL = strings.TrimSpace(link.URL)
		if link.Name == "" || link.URL == "" {
			continue
		}
		out = append(out, link)
	}
	return out
}

// LogPath returns the path to perch's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), "perch.log")
	}
	return filepath.Join(c.LogDir, "perch.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
