// Package metrics holds the Prometheus collectors for script generation.
//
// Collectors live on a private registry so the web server can expose them on
// /metrics and batch CLI runs can push them to a Pushgateway.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder receives pipeline outcomes.
type Recorder interface {
	Script(dialect, status string, columns int)
	Unmapped(dialect string, n int)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Script(string, string, int) {}
func (Nop) Unmapped(string, int)       {}

// Metrics is a Prometheus-backed Recorder.
type Metrics struct {
	reg *prometheus.Registry

	scripts  *prometheus.CounterVec
	unmapped *prometheus.CounterVec
	columns  prometheus.Histogram
}

// New builds the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		scripts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheet2ddl_scripts_total",
			Help: "Generation attempts, partitioned by source dialect and status.",
		}, []string{"dialect", "status"}),
		unmapped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheet2ddl_unmapped_types_total",
			Help: "Source types passed through without a mapping.",
		}, []string{"dialect"}),
		columns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sheet2ddl_columns",
			Help:    "Columns per generated table.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(m.scripts, m.unmapped, m.columns)
	return m
}

func (m *Metrics) Script(dialect, status string, columns int) {
	m.scripts.WithLabelValues(dialect, status).Inc()
	if status == "ok" {
		m.columns.Observe(float64(columns))
	}
}

func (m *Metrics) Unmapped(dialect string, n int) {
	if n > 0 {
		m.unmapped.WithLabelValues(dialect).Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Push sends the current values to a Pushgateway under job.
func (m *Metrics) Push(gatewayURL, job string) error {
	if gatewayURL == "" {
		return fmt.Errorf("metrics: gateway URL is required")
	}
	if job == "" {
		job = "sheet2ddl"
	}
	if err := push.New(gatewayURL, job).Gatherer(m.reg).Push(); err != nil {
		return fmt.Errorf("metrics: push to %s: %w", gatewayURL, err)
	}
	return nil
}
