// Package metrics exposes Prometheus collectors for validation sessions and
// writes them in the node exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/remediate"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Metrics holds the session collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	AssetsTotal          *prometheus.CounterVec
	AssetDuration        prometheus.Histogram
	ReportsTotal         *prometheus.CounterVec
	RuleFailuresTotal    *prometheus.CounterVec
	FixesTotal           *prometheus.CounterVec
	SessionsTotal        *prometheus.CounterVec
	SessionDuration      prometheus.Histogram
	LastSessionTimestamp prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AssetsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ruleranger_assets_total",
				Help: "Assets processed, by final state",
			},
			[]string{"state"},
		),
		AssetDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ruleranger_asset_duration_seconds",
				Help:    "Time spent processing one asset",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
		ReportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ruleranger_reports_total",
				Help: "Violations reported, by rule and severity",
			},
			[]string{"rule", "severity"},
		),
		RuleFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ruleranger_rule_failures_total",
				Help: "Rule checks that failed or panicked",
			},
			[]string{"rule"},
		),
		FixesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ruleranger_fixes_total",
				Help: "Fix attempts, by rule and outcome",
			},
			[]string{"rule", "status"},
		),
		SessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ruleranger_sessions_total",
				Help: "Validation sessions, by outcome",
			},
			[]string{"outcome"},
		),
		SessionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ruleranger_session_duration_seconds",
				Help:    "Validation session wall time",
				Buckets: prometheus.DefBuckets,
			},
		),
		LastSessionTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ruleranger_last_session_timestamp_seconds",
				Help: "Unix time the last session finished",
			},
		),
	}

	m.registry.MustRegister(
		m.AssetsTotal,
		m.AssetDuration,
		m.ReportsTotal,
		m.RuleFailuresTotal,
		m.FixesTotal,
		m.SessionsTotal,
		m.SessionDuration,
		m.LastSessionTimestamp,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AssetProcessed records one finished asset.
func (m *Metrics) AssetProcessed(res validator.AssetResult, elapsed time.Duration) {
	m.AssetsTotal.WithLabelValues(res.State.String()).Inc()
	m.AssetDuration.Observe(elapsed.Seconds())
	for _, rep := range res.Reports {
		m.ReportsTotal.WithLabelValues(rep.RuleID, rep.Severity.String()).Inc()
	}
}

// RuleFailed records a rule execution failure.
func (m *Metrics) RuleFailed(ruleID string) {
	m.RuleFailuresTotal.WithLabelValues(ruleID).Inc()
}

// FixAttempted records a fix outcome.
func (m *Metrics) FixAttempted(ruleID string, status remediate.Status) {
	m.FixesTotal.WithLabelValues(ruleID, status.String()).Inc()
}

// SessionFinished records a completed session.
func (m *Metrics) SessionFinished(result *validator.ValidationResult) {
	outcome := "passed"
	switch {
	case result.Cancelled:
		outcome = "cancelled"
	case !result.Passed():
		outcome = "failed"
	}
	m.SessionsTotal.WithLabelValues(outcome).Inc()
	m.SessionDuration.Observe(result.Duration.Seconds())
	m.LastSessionTimestamp.SetToCurrentTime()
}

// WriteTextfile writes every collector to path in the textfile collector
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "writing metrics to %s", path)
	}
	return nil
}
