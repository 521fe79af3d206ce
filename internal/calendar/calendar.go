package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/practice-booking/internal/appointment"
)

const (
	// DateLayout is the form value layout for a picked day.
	DateLayout = "2006-01-02"
	// MonthLayout is the query value layout for a displayed month.
	MonthLayout = "2006-01"
)

var (
	// ErrPastDate is returned when a day before today is picked.
	ErrPastDate = errors.New("calendar: date is in the past")
	// ErrInvalidDate is returned for unparseable date or month values.
	ErrInvalidDate = errors.New("calendar: invalid date")
)

// Day is one cell of the month grid.
type Day struct {
	Date     time.Time
	InMonth  bool
	Past     bool
	Today    bool
	Selected bool
}

// Selectable reports whether the day can be picked.
func (d Day) Selectable() bool {
	return d.InMonth && !d.Past
}

// Value is the form value submitted when the day is picked.
func (d Day) Value() string {
	return d.Date.Format(DateLayout)
}

// View is a rendered month.
type View struct {
	Month    time.Time // first day of the month
	Weeks    [][]Day
	CanPrev  bool
	Prev     time.Time
	Next     time.Time
	Weekdays []string
}

// Title is the month heading, e.g. "November 2026".
func (v View) Title() string {
	return v.Month.Format("January 2006")
}

// MonthParam formats a month for the calendar query string.
func MonthParam(t time.Time) string {
	return t.Format(MonthLayout)
}

// Month builds a Sunday-first grid for the month containing month. Days
// before today are disabled; navigation before the current month is too.
func Month(month, today time.Time, selected *time.Time) View {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	today = appointment.DateOnly(today)
	currentMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	next := first.AddDate(0, 1, 0)

	var weeks [][]Day
	for day := start; day.Before(next); {
		week := make([]Day, 7)
		for i := range week {
			week[i] = Day{
				Date:     day,
				InMonth:  day.Month() == first.Month(),
				Past:     day.Before(today),
				Today:    day.Equal(today),
				Selected: selected != nil && appointment.DateOnly(*selected).Equal(day),
			}
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}

	return View{
		Month:    first,
		Weeks:    weeks,
		CanPrev:  first.After(currentMonth),
		Prev:     first.AddDate(0, -1, 0),
		Next:     next,
		Weekdays: []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}
}

// ParseDate parses a picked day in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseMonth parses a MonthLayout query value; an empty value is the month
// containing today.
func ParseMonth(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Validate rejects days before today. Today itself can be booked.
func Validate(date, today time.Time) error {
	if appointment.DateOnly(date).Before(appointment.DateOnly(today)) {
		return ErrPastDate
	}
	return nil
}
