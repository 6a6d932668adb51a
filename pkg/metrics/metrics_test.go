package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("salon-test", prometheus.NewRegistry())

	m.RecordOutcome("create", OutcomeCreated)
	m.RecordOutcome("create", OutcomeConflict)
	m.RecordOutcome("create", OutcomeConflict)
	m.RecordNotificationFailure("publish")
	m.RecordRateLimited("general")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AppointmentOutcomes.WithLabelValues("salon-test", "create", OutcomeCreated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppointmentOutcomes.WithLabelValues("salon-test", "create", OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationFailures.WithLabelValues("salon-test", "publish")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitRejections.WithLabelValues("salon-test", "general")))
}

func TestMetrics_Observe(t *testing.T) {
	m := NewWithRegistry("salon-test", prometheus.NewRegistry())

	m.ObserveHTTP(http.MethodGet, "/api/v1/services", http.StatusOK, 10*time.Millisecond)
	m.ObserveQuery("select", time.Millisecond, nil)
	m.ObserveQuery("insert", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("salon-test", "GET", "/api/v1/services", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("salon-test", "select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("salon-test", "insert")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordOutcome("cancel", OutcomeCancelled)
		m.RecordNotificationFailure("store")
		m.RecordRateLimited("admin_mutations")
	})
}
