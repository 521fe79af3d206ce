package appointment

import (
	"strings"
	"time"
)

// SessionType is how the appointment takes place.
type SessionType int

const (
	InPerson SessionType = iota
	Video
	Phone
)

// SessionTypes lists every variant in display order.
var SessionTypes = []SessionType{InPerson, Video, Phone}

// String returns the wire value.
func (t SessionType) String() string {
	switch t {
	case InPerson:
		return "in-person"
	case Video:
		return "video"
	case Phone:
		return "phone"
	}
	return "unknown"
}

// Label is the confirmation heading for the session type.
func (t SessionType) Label() string {
	switch t {
	case InPerson:
		return "In-Person Appointment"
	case Video:
		return "Video Call Appointment"
	case Phone:
		return "Phone Call Appointment"
	}
	return "Appointment"
}

// ButtonLabel is the short label used on the session type picker.
func (t SessionType) ButtonLabel() string {
	switch t {
	case InPerson:
		return "In-Person"
	case Video:
		return "Video Call"
	case Phone:
		return "Phone Call"
	}
	return "Appointment"
}

// Icon names the glyph rendered next to the session type.
func (t SessionType) Icon() string {
	switch t {
	case InPerson:
		return "map-pin"
	case Video:
		return "video"
	case Phone:
		return "phone"
	}
	return "map-pin"
}

// ParseSessionType maps a wire value to a SessionType. An empty value is the
// default, in-person.
func ParseSessionType(s string) (SessionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "in-person":
		return InPerson, nil
	case "video":
		return Video, nil
	case "phone":
		return Phone, nil
	}
	return InPerson, ErrUnknownSessionType
}

// MarshalText encodes the session type as its wire name.
func (t SessionType) MarshalText() ([]byte, error) {
	if t < InPerson || t > Phone {
		return nil, ErrUnknownSessionType
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a wire name, rejecting unknown values.
func (t *SessionType) UnmarshalText(b []byte) error {
	parsed, err := ParseSessionType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Client form field names, shared by the HTML form and the field relay.
const (
	FieldClientName  = "clientName"
	FieldClientPhone = "clientPhone"
	FieldClientEmail = "clientEmail"
	FieldNotes       = "notes"
)

// Draft is the appointment being assembled by the booking wizard.
type Draft struct {
	Date        *time.Time
	Time        string
	SessionType SessionType
	ClientName  string
	ClientPhone string
	ClientEmail string
	Notes       string
}

// NewDraft returns an empty draft with the default session type.
func NewDraft() Draft {
	return Draft{SessionType: InPerson}
}

// HasDate reports whether a date has been chosen.
func (d Draft) HasDate() bool {
	return d.Date != nil
}

// HasTime reports whether a time slot has been chosen.
func (d Draft) HasTime() bool {
	return strings.TrimSpace(d.Time) != ""
}

// SetDate stores the calendar day of t.
func (d *Draft) SetDate(t time.Time) {
	day := DateOnly(t)
	d.Date = &day
}

// SetClientField relays a client information form field by name.
func (d *Draft) SetClientField(name, value string) error {
	switch name {
	case FieldClientName:
		d.ClientName = value
	case FieldClientPhone:
		d.ClientPhone = value
	case FieldClientEmail:
		d.ClientEmail = value
	case FieldNotes:
		d.Notes = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Clone returns a deep copy.
func (d Draft) Clone() Draft {
	out := d
	if d.Date != nil {
		day := *d.Date
		out.Date = &day
	}
	return out
}

// DateOnly truncates t to midnight UTC of its own calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
