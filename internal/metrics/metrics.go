// Package metrics provides Prometheus-based metrics collection for
// portsight. Collectors live on a private registry so tests can create
// isolated instances; the process-wide instance is reached through
// GetGlobal.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace     = "portsight"
	subsystemScan = "scan"
)

// Metrics holds all Prometheus metric collectors for the scan engine.
type Metrics struct {
	probesTotal     *prometheus.CounterVec
	probeDuration   prometheus.Histogram
	activeProbes    prometheus.Gauge
	bannersCaptured prometheus.Counter
	targetsScanned  prometheus.Counter
	targetDuration  prometheus.Histogram

	registry *prometheus.Registry
}

// New creates a metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		probesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemScan,
				Name:      "probes_total",
				Help:      "Total number of port probes by resulting status.",
			},
			[]string{"status"},
		),
		probeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemScan,
				Name:      "probe_duration_seconds",
				Help:      "Duration of individual port probes.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
			},
		),
		activeProbes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemScan,
				Name:      "active_probes",
				Help:      "Number of probes currently in flight.",
			},
		),
		bannersCaptured: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemScan,
				Name:      "banners_captured_total",
				Help:      "Total number of successful banner captures.",
			},
		),
		targetsScanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemScan,
				Name:      "targets_scanned_total",
				Help:      "Total number of targets scanned to completion.",
			},
		),
		targetDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemScan,
				Name:      "target_duration_seconds",
				Help:      "Wall-clock duration of per-target scans.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.probesTotal,
		m.probeDuration,
		m.activeProbes,
		m.bannersCaptured,
		m.targetsScanned,
		m.targetDuration,
	)
	registry.MustRegister(collectors.NewGoCollector())

	return m
}

// Registry returns the underlying Prometheus registry, for exposition
// or test gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ProbeStarted records a probe entering flight.
func (m *Metrics) ProbeStarted() {
	m.activeProbes.Inc()
}

// ProbeFinished records a completed probe with its status and elapsed
// time in milliseconds.
func (m *Metrics) ProbeFinished(status string, elapsedMs float64, banner bool) {
	m.activeProbes.Dec()
	m.probesTotal.WithLabelValues(status).Inc()
	m.probeDuration.Observe(elapsedMs / 1000.0)
	if banner {
		m.bannersCaptured.Inc()
	}
}

// TargetScanned records one target scanned to completion.
func (m *Metrics) TargetScanned(d time.Duration) {
	m.targetsScanned.Inc()
	m.targetDuration.Observe(d.Seconds())
}

var (
	globalMetrics *Metrics
	globalOnce    sync.Once
)

// GetGlobal returns the process-wide metrics instance, creating it on
// first use.
func GetGlobal() *Metrics {
	globalOnce.Do(func() {
		globalMetrics = New()
	})
	return globalMetrics
}
