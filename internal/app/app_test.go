package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/logtail"
	"github.com/five82/perch/internal/poll"
	"github.com/five82/perch/internal/state"
)

func TestNewLoggerWritesParsableJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Warn("poll failed", "widget", "reviews")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}

	entry := logtail.ParseLine(lines[0])
	if entry.Level != "WARN" || entry.Message != "poll failed" {
		t.Fatalf("ParseLine = %+v", entry)
	}
	if v, ok := entry.Attr("widget"); !ok || v != "reviews" {
		t.Fatalf("widget attr = %q, %v", v, ok)
	}
}

func TestOpenLoggerCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "perch.log")
	logger, closeLog, err := OpenLogger(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("OpenLogger: %v", err)
	}
	logger.Info("perch starting")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"perch starting"`) {
		t.Fatalf("log contents = %q", data)
	}
}

func TestOpenLoggerEmptyPathDiscards(t *testing.T) {
	logger, closeLog, err := OpenLogger("", slog.LevelInfo)
	if err != nil {
		t.Fatalf("OpenLogger: %v", err)
	}
	defer closeLog()
	logger.Info("nowhere")
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	applyOverrides(&cfg, Options{})
	if cfg.APIURL != "http://localhost:8000" || cfg.PollInterval != 5*time.Minute || cfg.MetricsAddr != "" {
		t.Fatalf("empty overrides changed config: %+v", cfg)
	}

	applyOverrides(&cfg, Options{
		APIURL:       "http://dash:9000",
		PollInterval: time.Minute,
		MetricsAddr:  "127.0.0.1:0",
	})
	if cfg.APIURL != "http://dash:9000" || cfg.PollInterval != time.Minute || cfg.MetricsAddr != "127.0.0.1:0" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestServeMetricsExposesPollCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := state.NewStore(0)
	fetcher := poll.NewFetcher("sample", store, func(context.Context) (int, error) {
		return 1, nil
	}, poll.Options{Metrics: poll.NewMetrics(reg)})
	fetcher.Start(t.Context())
	fetcher.Wait()
	fetcher.Stop()

	srv, err := ServeMetrics("127.0.0.1:0", reg, NewLogger(nil, slog.LevelInfo))
	if err != nil {
		t.Fatalf("ServeMetrics: %v", err)
	}
	defer srv.Close()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	want := `perch_poll_total{result="ok",widget="sample"} 1`
	if !strings.Contains(string(body), want) {
		t.Fatalf("metrics body missing %q:\n%s", want, body)
	}
}

func TestServeMetricsRejectsBadAddress(t *testing.T) {
	if _, err := ServeMetrics("not-an-address", prometheus.NewRegistry(), NewLogger(nil, slog.LevelInfo)); err == nil {
		t.Fatal("expected error for bad address")
	}
}
