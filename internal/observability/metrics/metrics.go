package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking wizard.
type BookingMetrics struct {
	transitions   *prometheus.CounterVec
	blocked       *prometheus.CounterVec
	submissions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	slotLatency   *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "booking",
			Name:      "step_transitions_total",
			Help:      "Wizard step transitions",
		}, []string{"from", "to"}),
		blocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "booking",
			Name:      "blocked_transitions_total",
			Help:      "Forward navigation refused by a step guard",
		}, []string{"step", "reason"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Submitted bookings",
		}, []string{"session_type"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "booking",
			Name:      "confirmation_emails_total",
			Help:      "Confirmation email attempts",
		}, []string{"status"}),
		slotLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "practice",
			Subsystem: "booking",
			Name:      "slot_fetch_seconds",
			Help:      "Latency of time slot lookups",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitions, m.blocked, m.submissions, m.notifications, m.slotLatency)
	return m
}

func (m *BookingMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *BookingMetrics) ObserveBlocked(step, reason string) {
	if m == nil {
		return
	}
	m.blocked.WithLabelValues(step, reason).Inc()
}

func (m *BookingMetrics) ObserveSubmission(sessionType string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(sessionType).Inc()
}

func (m *BookingMetrics) ObserveNotification(err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.notifications.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveSlotFetch(seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.slotLatency.WithLabelValues(status).Observe(seconds)
}
