package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer serves a Prometheus registry over HTTP.
type MetricsServer struct {
	srv  *http.Server
	addr net.Addr
}

// ServeMetrics exposes reg on addr at /metrics until Close is called. The
// listener is bound before returning so address errors surface at startup.
func ServeMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (*MetricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("metrics server starting", "addr", ln.Addr().String())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server failed", "err", err)
		}
	}()

	return &MetricsServer{srv: srv, addr: ln.Addr()}, nil
}

// Addr returns the bound listen address.
func (s *MetricsServer) Addr() string { return s.addr.String() }

// Close shuts the server down, waiting briefly for open scrapes.
func (s *MetricsServer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
}
