package confirmation

import (
	"time"

	"github.com/wolfman30/practice-booking/internal/appointment"
	"github.com/wolfman30/practice-booking/internal/session"
)

// DateFormat renders e.g. "Tuesday, November 3, 2026".
const DateFormat = "Monday, January 2, 2006"

// RescheduleNotice is printed under the appointment details.
const RescheduleNotice = "A confirmation email has been sent to your email address. " +
	"If you need to reschedule or cancel your appointment, please contact us at least 24 hours in advance."

// View is the read-only summary of a submitted booking.
type View struct {
	Loading bool

	ID           string
	Date         string
	Time         string
	SessionLabel string
	SessionIcon  string
	ClientName   string
	ClientPhone  string
	ClientEmail  string
	Notes        string
	Notice       string
}

// New builds the view from the record handed over by the wizard. A nil
// record yields the loading view; it is never an error.
func New(rec *session.Confirmation) View {
	if rec == nil {
		return View{Loading: true}
	}
	d := rec.Draft
	return View{
		ID:           rec.ID,
		Date:         FormatDate(d.Date),
		Time:         d.Time,
		SessionLabel: d.SessionType.Label(),
		SessionIcon:  d.SessionType.Icon(),
		ClientName:   d.ClientName,
		ClientPhone:  d.ClientPhone,
		ClientEmail:  d.ClientEmail,
		Notes:        d.Notes,
		Notice:       RescheduleNotice,
	}
}

// HasNotes reports whether the notes row should be shown.
func (v View) HasNotes() bool {
	return v.Notes != ""
}

// FormatDate formats the appointment day, or "N/A" when none was chosen.
func FormatDate(date *time.Time) string {
	if date == nil {
		return "N/A"
	}
	return appointment.DateOnly(*date).Format(DateFormat)
}
