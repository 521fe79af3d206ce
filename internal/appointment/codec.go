package appointment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// wireDraft is the serialized form handed from the wizard to the
// confirmation view. The date travels as text.
type wireDraft struct {
	Date        *string     `json:"date"`
	Time        string      `json:"time"`
	SessionType SessionType `json:"sessionType"`
	ClientName  string      `json:"clientName"`
	ClientPhone string      `json:"clientPhone"`
	ClientEmail string      `json:"clientEmail"`
	Notes       string      `json:"notes"`
}

// Encode serializes the draft as JSON.
func Encode(d Draft) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("appointment: encode draft: %w", err)
	}
	return data, nil
}

// Decode parses a draft produced by Encode.
func Decode(data []byte) (Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("appointment: decode draft: %w", err)
	}
	return d, nil
}

// MarshalJSON writes the camelCase wire form with the date as YYYY-MM-DD.
func (d Draft) MarshalJSON() ([]byte, error) {
	w := wireDraft{
		Time:        d.Time,
		SessionType: d.SessionType,
		ClientName:  d.ClientName,
		ClientPhone: d.ClientPhone,
		ClientEmail: d.ClientEmail,
		Notes:       d.Notes,
	}
	if d.Date != nil {
		s := FormatDate(*d.Date)
		w.Date = &s
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the wire form written by MarshalJSON.
func (d *Draft) UnmarshalJSON(data []byte) error {
	var w wireDraft
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := Draft{
		Time:        w.Time,
		SessionType: w.SessionType,
		ClientName:  w.ClientName,
		ClientPhone: w.ClientPhone,
		ClientEmail: w.ClientEmail,
		Notes:       w.Notes,
	}
	if w.Date != nil && strings.TrimSpace(*w.Date) != "" {
		day, err := ParseDate(*w.Date)
		if err != nil {
			return err
		}
		out.Date = &day
	}
	*d = out
	return nil
}

// FormatDate renders the textual form of a calendar date.
func FormatDate(t time.Time) string {
	return DateOnly(t).Format(time.RFC3339)
}

// ParseDate accepts an RFC 3339 timestamp, with or without fractional
// seconds, or a bare YYYY-MM-DD date and returns its calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOnly(t), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
