package handlers

import (
	"net/http"
	"time"

	"github.com/wolfman30/practice-booking/internal/calendar"
	"github.com/wolfman30/practice-booking/internal/observability/metrics"
	"github.com/wolfman30/practice-booking/internal/timeslots"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

// SlotsHandler serves the time slot list as JSON.
type SlotsHandler struct {
	slots   timeslots.Provider
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewSlotsHandler creates the slots JSON API handler.
func NewSlotsHandler(slots timeslots.Provider, m *metrics.BookingMetrics, logger *logging.Logger) *SlotsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SlotsHandler{slots: slots, metrics: m, logger: logger, now: time.Now}
}

// SlotsResponse is the body of GET /api/slots.
type SlotsResponse struct {
	Date  string           `json:"date"`
	Slots []timeslots.Slot `json:"slots"`
}

// List handles GET /api/slots?date=YYYY-MM-DD.
func (h *SlotsHandler) List(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		jsonError(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if err := calendar.Validate(date, h.now()); err != nil {
		jsonError(w, "date is in the past", http.StatusBadRequest)
		return
	}

	start := time.Now()
	slots, err := h.slots.Slots(r.Context(), date)
	h.metrics.ObserveSlotFetch(time.Since(start).Seconds(), err)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		h.logger.Error("slot lookup failed", "error", err, "date", date.Format(calendar.DateLayout))
		jsonError(w, "time slots unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, SlotsResponse{Date: date.Format(calendar.DateLayout), Slots: slots})
}
