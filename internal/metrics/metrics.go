// Package metrics provides Prometheus metrics for the tracking daemon.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the daemon. A nil *Metrics is
// valid and records nothing, so callers never need to guard.
type Metrics struct {
	SessionsRecorded     *prometheus.CounterVec
	SessionsDiscarded    prometheus.Counter
	TrackedMilliseconds  *prometheus.CounterVec
	AchievementsUnlocked *prometheus.CounterVec
	Rollovers            *prometheus.CounterVec
	LivenessChecks       *prometheus.CounterVec
	Score                prometheus.Gauge
	Tracking             prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SessionsRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pq_sessions_recorded_total",
				Help: "Sessions recorded by category.",
			},
			[]string{"category"},
		),
		SessionsDiscarded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pq_sessions_discarded_total",
				Help: "Sessions dropped for being shorter than the minimum length.",
			},
		),
		TrackedMilliseconds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pq_tracked_milliseconds_total",
				Help: "Tracked active time by category.",
			},
			[]string{"category"},
		),
		AchievementsUnlocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pq_achievements_unlocked_total",
				Help: "Achievements unlocked by id.",
			},
			[]string{"achievement"},
		),
		Rollovers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pq_rollovers_total",
				Help: "Day rollovers by outcome (archived or discarded).",
			},
			[]string{"outcome"},
		),
		LivenessChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pq_liveness_checks_total",
				Help: "Liveness checks by result (active, inactive, error).",
			},
			[]string{"result"},
		),
		Score: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pq_daily_score",
				Help: "Current productivity score for today.",
			},
		),
		Tracking: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pq_tracking",
				Help: "1 while a session is being measured, 0 when idle.",
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.SessionsRecorded)
	reg.MustRegister(m.SessionsDiscarded)
	reg.MustRegister(m.TrackedMilliseconds)
	reg.MustRegister(m.AchievementsUnlocked)
	reg.MustRegister(m.Rollovers)
	reg.MustRegister(m.LivenessChecks)
	reg.MustRegister(m.Score)
	reg.MustRegister(m.Tracking)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordSession counts a recorded session and its duration.
func (m *Metrics) RecordSession(category string, durationMs int64) {
	if m == nil {
		return
	}
	m.SessionsRecorded.WithLabelValues(category).Inc()
	m.TrackedMilliseconds.WithLabelValues(category).Add(float64(durationMs))
}

// RecordDiscarded counts a session below the minimum length.
func (m *Metrics) RecordDiscarded() {
	if m == nil {
		return
	}
	m.SessionsDiscarded.Inc()
}

// RecordAchievement counts an unlocked achievement.
func (m *Metrics) RecordAchievement(id string) {
	if m == nil {
		return
	}
	m.AchievementsUnlocked.WithLabelValues(id).Inc()
}

// RecordRollover counts a day change.
func (m *Metrics) RecordRollover(archived bool) {
	if m == nil {
		return
	}
	outcome := "discarded"
	if archived {
		outcome = "archived"
	}
	m.Rollovers.WithLabelValues(outcome).Inc()
}

// RecordLiveness counts a liveness check result.
func (m *Metrics) RecordLiveness(result string) {
	if m == nil {
		return
	}
	m.LivenessChecks.WithLabelValues(result).Inc()
}

// SetScore sets the current score gauge.
func (m *Metrics) SetScore(score int) {
	if m == nil {
		return
	}
	m.Score.Set(float64(score))
}

// SetTracking sets the tracking state gauge.
func (m *Metrics) SetTracking(tracking bool) {
	if m == nil {
		return
	}
	if tracking {
		m.Tracking.Set(1)
		return
	}
	m.Tracking.Set(0)
}
