package poll

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts poll and mutation outcomes per widget. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	polls       *prometheus.CounterVec
	mutations   *prometheus.CounterVec
	resyncs     *prometheus.CounterVec
	lastSuccess *prometheus.GaugeVec
}

// NewMetrics builds the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perch",
			Name:      "poll_total",
			Help:      "Widget fetches by outcome.",
		}, []string{"widget", "result"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perch",
			Name:      "mutation_total",
			Help:      "Remote calls issued after optimistic edits, by outcome.",
		}, []string{"widget", "op", "result"}),
		resyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perch",
			Name:      "resync_total",
			Help:      "Forced re-fetches after a failed remote call.",
		}, []string{"widget"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "perch",
			Name:      "poll_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful fetch.",
		}, []string{"widget"}),
	}
	if reg != nil {
		reg.MustRegister(m.polls, m.mutations, m.resyncs, m.lastSuccess)
	}
	return m
}

func (m *Metrics) observePoll(widget string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.polls.WithLabelValues(widget, "error").Inc()
		return
	}
	m.polls.WithLabelValues(widget, "ok").Inc()
	m.lastSuccess.WithLabelValues(widget).Set(float64(time.Now().Unix()))
}

func (m *Metrics) observeMutation(widget, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
		m.resyncs.WithLabelValues(widget).Inc()
	}
	m.mutations.WithLabelValues(widget, op, result).Inc()
}
