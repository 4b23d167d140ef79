package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BookingCounters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncBookingsCreated()
	m.IncBookingsCreated()
	m.ObserveTransition("confirmed", true)
	m.ObserveTransition("confirmed", false)
	m.ObserveTransition("confirmed", false)
	m.ObserveSweep(3, nil)
	m.ObserveSweep(1, errors.New("db down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingTransitions.WithLabelValues("confirmed", "applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingTransitions.WithLabelValues("confirmed", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweepRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweepRuns.WithLabelValues("error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.sweptBookings))
}

func TestMetrics_DBAndHTTP(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveDBQuery("select", 5*time.Millisecond, nil)
	m.ObserveDBQuery("update", time.Millisecond, errors.New("deadlock"))
	m.SetDBPoolStats("bookings", 10, 4, 6, 2)
	m.ObserveHTTPRequest("GET", "/api/v1/bookings/{bookingId}", 200, 10*time.Millisecond)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("update")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.dbInUse.WithLabelValues("bookings")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/bookings/{bookingId}", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingsCreated()
		m.ObserveTransition("cancelled", true)
		m.ObserveSweep(1, nil)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBPoolStats("bookings", 1, 1, 0, 0)
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	})
}
