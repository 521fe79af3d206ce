package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveTransition("date", "time_and_type")
	m.ObserveTransition("date", "time_and_type")
	m.ObserveBlocked("time_and_type", "time_required")
	m.ObserveSubmission("video")
	m.ObserveNotification(nil)
	m.ObserveNotification(errors.New("boom"))
	m.ObserveSlotFetch(0.8, nil)

	if got := testutil.ToFloat64(m.transitions.WithLabelValues("date", "time_and_type")); got != 2 {
		t.Errorf("expected 2 transitions, got %v", got)
	}
	if got := testutil.ToFloat64(m.blocked.WithLabelValues("time_and_type", "time_required")); got != 1 {
		t.Errorf("expected 1 blocked, got %v", got)
	}
	if got := testutil.ToFloat64(m.notifications.WithLabelValues("failed")); got != 1 {
		t.Errorf("expected 1 failed notification, got %v", got)
	}
	if got := testutil.CollectAndCount(m.slotLatency); got != 1 {
		t.Errorf("expected 1 latency series, got %d", got)
	}
}

func TestBookingMetricsDefaultRegistry(t *testing.T) {
	m := NewBookingMetrics(nil)
	m.ObserveSubmission("phone")
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveTransition("date", "time_and_type")
	m.ObserveBlocked("date", "date_required")
	m.ObserveSubmission("in-person")
	m.ObserveNotification(nil)
	m.ObserveSlotFetch(0.1, errors.New("canceled"))
}
