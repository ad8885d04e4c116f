// Package metrics provides Prometheus collectors for the progression store
// and the matching engine.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/abhisek/wayhome/internal/progression"
)

// Metrics holds all collectors on a private registry.
type Metrics struct {
	EventsApplied   *prometheus.CounterVec
	EventsDuplicate prometheus.Counter
	EventsRejected  prometheus.Counter
	XPTotal         prometheus.Gauge
	MatchScore      prometheus.Histogram

	registry *prometheus.Registry
}

var _ progression.Recorder = (*Metrics)(nil)

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		EventsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayhome_events_applied_total",
				Help: "Contribution events applied, by category.",
			},
			[]string{"category"},
		),
		EventsDuplicate: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wayhome_events_duplicate_total",
				Help: "Contribution events absorbed as replays of an already applied id.",
			},
		),
		EventsRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wayhome_events_rejected_total",
				Help: "Malformed contribution events rejected before mutation.",
			},
		),
		XPTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wayhome_xp",
				Help: "Current experience total held by the store.",
			},
		),
		MatchScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wayhome_match_score",
				Help:    "Distribution of job match scores.",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.EventsApplied)
	reg.MustRegister(m.EventsDuplicate)
	reg.MustRegister(m.EventsRejected)
	reg.MustRegister(m.XPTotal)
	reg.MustRegister(m.MatchScore)

	return m
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText gathers the registry and writes it in the Prometheus text
// exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// EventApplied increments the applied counter for a category.
func (m *Metrics) EventApplied(c progression.Category) {
	m.EventsApplied.WithLabelValues(string(c)).Inc()
}

// EventDuplicate increments the duplicate counter.
func (m *Metrics) EventDuplicate() {
	m.EventsDuplicate.Inc()
}

// EventRejected increments the rejected counter.
func (m *Metrics) EventRejected() {
	m.EventsRejected.Inc()
}

// XP sets the XP gauge.
func (m *Metrics) XP(total int) {
	m.XPTotal.Set(float64(total))
}

// RecordMatch observes one match score.
func (m *Metrics) RecordMatch(score int) {
	m.MatchScore.Observe(float64(score))
}
