package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, c.Write(&pb))
	if pb.Counter != nil {
		return pb.GetCounter().GetValue()
	}
	return pb.GetGauge().GetValue()
}

func TestRecordSession(t *testing.T) {
	m := New()
	m.RecordSession("productive", 6000)
	m.RecordSession("productive", 4000)

	assert.Equal(t, 2.0, value(t, m.SessionsRecorded.WithLabelValues("productive")))
	assert.Equal(t, 10000.0, value(t, m.TrackedMilliseconds.WithLabelValues("productive")))
}

func TestRecordRollover(t *testing.T) {
	m := New()
	m.RecordRollover(true)
	m.RecordRollover(false)
	m.RecordRollover(false)

	assert.Equal(t, 1.0, value(t, m.Rollovers.WithLabelValues("archived")))
	assert.Equal(t, 2.0, value(t, m.Rollovers.WithLabelValues("discarded")))
}

func TestGauges(t *testing.T) {
	m := New()
	m.SetScore(72)
	m.SetTracking(true)

	assert.Equal(t, 72.0, value(t, m.Score))
	assert.Equal(t, 1.0, value(t, m.Tracking))

	m.SetTracking(false)
	assert.Equal(t, 0.0, value(t, m.Tracking))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSession("neutral", 1)
		m.RecordDiscarded()
		m.RecordAchievement("high-performer")
		m.RecordRollover(true)
		m.RecordLiveness("active")
		m.SetScore(1)
		m.SetTracking(true)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordDiscarded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "pq_sessions_discarded_total 1"))
}
