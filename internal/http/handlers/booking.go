package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/practice-booking/internal/appointment"
	"github.com/wolfman30/practice-booking/internal/calendar"
	httpmiddleware "github.com/wolfman30/practice-booking/internal/http/middleware"
	"github.com/wolfman30/practice-booking/internal/observability/metrics"
	"github.com/wolfman30/practice-booking/internal/session"
	"github.com/wolfman30/practice-booking/internal/timeslots"
	"github.com/wolfman30/practice-booking/internal/web"
	"github.com/wolfman30/practice-booking/internal/wizard"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

const notifyTimeout = 10 * time.Second

var errSlotsUnavailable = errors.New("handlers: time slots unavailable")

var clientFields = []string{
	appointment.FieldClientName,
	appointment.FieldClientPhone,
	appointment.FieldClientEmail,
	appointment.FieldNotes,
}

// Notifier sends the client a confirmation once a booking is submitted.
type Notifier interface {
	Notify(ctx context.Context, draft appointment.Draft) error
}

// BookingConfig wires the booking handler. Store, Slots and Renderer are
// required.
type BookingConfig struct {
	Store    session.Store
	Slots    timeslots.Provider
	Renderer *web.Renderer
	Notifier Notifier
	Metrics  *metrics.BookingMetrics
	Logger   *logging.Logger
}

// BookingHandler serves the booking wizard pages and form posts.
// Each post loads, mutates and saves the session state; concurrent posts
// from the same session are not serialized and the last write wins.
type BookingHandler struct {
	store    session.Store
	slots    timeslots.Provider
	renderer *web.Renderer
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
	now      func() time.Time
	newID    func() string
}

// NewBookingHandler creates a booking handler. Store, Slots and Renderer are required.
func NewBookingHandler(cfg BookingConfig) *BookingHandler {
	if cfg.Store == nil || cfg.Slots == nil || cfg.Renderer == nil {
		panic("handlers: booking handler requires store, slots and renderer")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &BookingHandler{
		store:    cfg.Store,
		slots:    cfg.Slots,
		renderer: cfg.Renderer,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Book renders the current wizard step.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	h.renderBook(w, r, nil)
}

// Calendar renders the date step showing the requested month.
func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	today := h.now()
	month, err := calendar.ParseMonth(r.URL.Query().Get("month"), today)
	if err != nil {
		seeOther(w, r, "/book")
		return
	}
	if current, _ := calendar.ParseMonth("", today); month.Before(current) {
		month = current
	}
	h.renderBook(w, r, &month)
}

func (h *BookingHandler) renderBook(w http.ResponseWriter, r *http.Request, month *time.Time) {
	ctx := r.Context()
	wiz, err := h.load(ctx, r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	view := newBookView(wiz)
	draft := wiz.Draft()
	today := h.now()

	switch wiz.Step() {
	case wizard.StepDate:
		shown := today
		switch {
		case month != nil:
			shown = *month
		case draft.Date != nil:
			shown = *draft.Date
		}
		view.Calendar = calendar.Month(shown, today, draft.Date)
	case wizard.StepTimeAndType:
		slots, err := h.fetchSlots(ctx, *draft.Date)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			h.logger.Warn("slot lookup failed", "error", err)
			view.SlotsError = slotsUnavailable
		}
		view.Slots = slotOptions(slots, draft.Time)
		view.SessionOptions = sessionOptions(draft.SessionType)
	case wizard.StepClientInfo:
		view.Advisories = advisories(draft)
	}

	page := web.Page{Title: "Book an Appointment", Flash: popFlash(w, r), Content: view}
	if err := h.renderer.Render(w, http.StatusOK, web.PageBook, page); err != nil {
		h.serverError(w, r, err)
	}
}

// SelectDate handles a day picked on the calendar.
func (h *BookingHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(_ context.Context, wiz *wizard.Wizard) error {
		date, err := calendar.ParseDate(r.PostFormValue("date"))
		if err != nil {
			return wizard.ErrDateRequired
		}
		return wiz.SelectDate(date, h.now())
	})
}

// SelectTime handles a time slot button. Unavailable slots are ignored.
func (h *BookingHandler) SelectTime(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, wiz *wizard.Wizard) error {
		if wiz.Step() != wizard.StepTimeAndType {
			return wizard.ErrWrongStep
		}
		slots, err := h.fetchSlots(ctx, *wiz.Draft().Date)
		if err != nil {
			h.logger.Warn("slot lookup failed", "error", err)
			return errSlotsUnavailable
		}
		_, err = wiz.SelectTime(slots, r.PostFormValue("time"))
		return err
	})
}

// SelectSessionType handles the in-person / video / phone buttons.
func (h *BookingHandler) SelectSessionType(w http.ResponseWriter, r *http.Request) {
	t, err := appointment.ParseSessionType(r.PostFormValue("sessionType"))
	if err != nil {
		http.Error(w, "unknown session type", http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(_ context.Context, wiz *wizard.Wizard) error {
		return wiz.SetSessionType(t)
	})
}

// UpdateClient saves the client information fields without advancing.
func (h *BookingHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(_ context.Context, wiz *wizard.Wizard) error {
		return applyClientFields(r, wiz)
	})
}

// Back returns to the previous step, keeping everything entered so far.
func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(_ context.Context, wiz *wizard.Wizard) error {
		if wiz.Step() == wizard.StepClientInfo {
			if err := applyClientFields(r, wiz); err != nil {
				return err
			}
		}
		from := wiz.Step()
		if err := wiz.Back(); err != nil {
			return err
		}
		if from != wiz.Step() {
			h.metrics.ObserveTransition(from.String(), wiz.Step().String())
		}
		return nil
	})
}

// Next advances the wizard. Leaving the client information step submits
// the booking and redirects to its confirmation page.
func (h *BookingHandler) Next(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	wiz, err := h.load(ctx, r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if wiz.Step() == wizard.StepClientInfo {
		if err := applyClientFields(r, wiz); err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	from := wiz.Step()
	sub, err := wiz.Next(h.now())
	if err != nil {
		if alert := wizard.Alert(err); alert != "" {
			h.metrics.ObserveBlocked(from.String(), blockReason(err))
			setFlash(w, alert)
		}
		seeOther(w, r, "/book")
		return
	}
	h.metrics.ObserveTransition(from.String(), wiz.Step().String())

	if sub == nil {
		if err := h.save(ctx, r, wiz); err != nil {
			h.serverError(w, r, err)
			return
		}
		seeOther(w, r, "/book")
		return
	}

	id, err := h.submit(ctx, httpmiddleware.SessionID(ctx), sub)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	seeOther(w, r, "/confirmation/"+id)
}

// submit stores the hand-off record, clears the wizard and sends the
// confirmation email. Email failures are logged only.
func (h *BookingHandler) submit(ctx context.Context, sid string, sub *wizard.Submission) (string, error) {
	rec := session.Confirmation{ID: h.newID(), Draft: sub.Draft, SubmittedAt: sub.SubmittedAt}
	if err := h.store.SaveConfirmation(ctx, rec); err != nil {
		return "", err
	}
	if err := h.store.ResetWizard(ctx, sid); err != nil {
		h.logger.Warn("failed to reset wizard after submission", "error", err, "confirmation_id", rec.ID)
	}
	h.metrics.ObserveSubmission(rec.Draft.SessionType.String())
	h.logger.Info("booking submitted", "confirmation_id", rec.ID, "session_type", rec.Draft.SessionType.String())

	if h.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		err := h.notifier.Notify(nctx, rec.Draft)
		cancel()
		h.metrics.ObserveNotification(err)
		if err != nil {
			h.logger.Warn("confirmation email failed", "error", err, "confirmation_id", rec.ID)
		}
	}
	return rec.ID, nil
}

// mutate runs one wizard input inside load/save and redirects back to the
// booking page. Inputs for another step are dropped silently; blocked
// inputs show an alert.
func (h *BookingHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(context.Context, *wizard.Wizard) error) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	wiz, err := h.load(ctx, r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := fn(ctx, wiz); err != nil {
		switch {
		case ctx.Err() != nil:
			return
		case errors.Is(err, errSlotsUnavailable):
			setFlash(w, slotsUnavailable)
		case wizard.Alert(err) != "":
			h.metrics.ObserveBlocked(wiz.Step().String(), blockReason(err))
			setFlash(w, wizard.Alert(err))
		case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrSubmitted):
			h.logger.Debug("ignoring input for another step", "step", wiz.Step().String())
		default:
			h.serverError(w, r, err)
			return
		}
		seeOther(w, r, "/book")
		return
	}

	if err := h.save(ctx, r, wiz); err != nil {
		h.serverError(w, r, err)
		return
	}
	seeOther(w, r, "/book")
}

func (h *BookingHandler) load(ctx context.Context, r *http.Request) (*wizard.Wizard, error) {
	state, err := h.store.LoadWizard(ctx, httpmiddleware.SessionID(r.Context()))
	if err != nil {
		return nil, err
	}
	if state == nil || state.Step == wizard.StepSubmitted {
		return wizard.New(), nil
	}
	return wizard.Restore(*state), nil
}

func (h *BookingHandler) save(ctx context.Context, r *http.Request, wiz *wizard.Wizard) error {
	return h.store.SaveWizard(ctx, httpmiddleware.SessionID(r.Context()), wiz.Snapshot())
}

func (h *BookingHandler) fetchSlots(ctx context.Context, date time.Time) ([]timeslots.Slot, error) {
	start := time.Now()
	slots, err := h.slots.Slots(ctx, date)
	h.metrics.ObserveSlotFetch(time.Since(start).Seconds(), err)
	return slots, err
}

func (h *BookingHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("booking request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
}

// applyClientFields copies whichever client fields the form carries.
func applyClientFields(r *http.Request, wiz *wizard.Wizard) error {
	for _, name := range clientFields {
		if _, ok := r.PostForm[name]; !ok {
			continue
		}
		if err := wiz.SetClientField(name, r.PostForm.Get(name)); err != nil {
			return err
		}
	}
	return nil
}

func blockReason(err error) string {
	switch {
	case errors.Is(err, wizard.ErrDateRequired):
		return "date_required"
	case errors.Is(err, wizard.ErrTimeRequired):
		return "time_required"
	case errors.Is(err, calendar.ErrPastDate):
		return "past_date"
	}
	return "other"
}
