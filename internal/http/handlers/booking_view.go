package handlers

import (
	"github.com/wolfman30/practice-booking/internal/appointment"
	"github.com/wolfman30/practice-booking/internal/calendar"
	"github.com/wolfman30/practice-booking/internal/confirmation"
	"github.com/wolfman30/practice-booking/internal/timeslots"
	"github.com/wolfman30/practice-booking/internal/wizard"
)

const slotsUnavailable = "Unable to load available times. Please try again."

// BookView is what the booking page template renders.
type BookView struct {
	OnDate   bool
	OnTime   bool
	OnClient bool
	CanBack  bool

	Progress  []wizard.Indicator
	NextLabel string

	Calendar         calendar.View
	SelectedDateText string

	Slots          []SlotOption
	SlotsError     string
	SessionOptions []SessionOption

	Draft      appointment.Draft
	Advisories map[string]string
}

// SlotOption is one time slot button.
type SlotOption struct {
	Label     string
	Available bool
	Selected  bool
}

// SessionOption is one session type button.
type SessionOption struct {
	Value    string
	Label    string
	Icon     string
	Selected bool
}

func newBookView(w *wizard.Wizard) BookView {
	d := w.Draft()
	step := w.Step()
	v := BookView{
		OnDate:    step == wizard.StepDate,
		OnTime:    step == wizard.StepTimeAndType,
		OnClient:  step == wizard.StepClientInfo,
		CanBack:   step > wizard.StepDate,
		Progress:  w.Progress(),
		NextLabel: "Next",
		Draft:     d,
	}
	if v.OnClient {
		v.NextLabel = "Confirm Booking"
	}
	if d.Date != nil {
		v.SelectedDateText = confirmation.FormatDate(d.Date)
	}
	return v
}

func slotOptions(slots []timeslots.Slot, selected string) []SlotOption {
	out := make([]SlotOption, len(slots))
	for i, s := range slots {
		out[i] = SlotOption{Label: s.Label, Available: s.Available, Selected: s.Available && s.Label == selected}
	}
	return out
}

func sessionOptions(selected appointment.SessionType) []SessionOption {
	out := make([]SessionOption, len(appointment.SessionTypes))
	for i, t := range appointment.SessionTypes {
		out[i] = SessionOption{Value: t.String(), Label: t.ButtonLabel(), Icon: t.Icon(), Selected: t == selected}
	}
	return out
}

// advisories are only shown once the client has entered something.
func advisories(d appointment.Draft) map[string]string {
	if d.ClientName == "" && d.ClientPhone == "" && d.ClientEmail == "" {
		return nil
	}
	out := make(map[string]string)
	for _, a := range d.Advisories() {
		out[a.Field] = a.Message
	}
	return out
}
