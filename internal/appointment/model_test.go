package appointment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, InPerson, d.SessionType)
	assert.False(t, d.HasDate())
	assert.False(t, d.HasTime())
	assert.Empty(t, d.ClientName)
}

func TestSessionTypeVariants(t *testing.T) {
	tests := []struct {
		typ    SessionType
		wire   string
		label  string
		button string
		icon   string
	}{
		{InPerson, "in-person", "In-Person Appointment", "In-Person", "map-pin"},
		{Video, "video", "Video Call Appointment", "Video Call", "video"},
		{Phone, "phone", "Phone Call Appointment", "Phone Call", "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			assert.Equal(t, tt.wire, tt.typ.String())
			assert.Equal(t, tt.label, tt.typ.Label())
			assert.Equal(t, tt.button, tt.typ.ButtonLabel())
			assert.Equal(t, tt.icon, tt.typ.Icon())

			parsed, err := ParseSessionType(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, parsed)
		})
	}
	assert.Len(t, SessionTypes, 3)
}

func TestParseSessionType(t *testing.T) {
	got, err := ParseSessionType("")
	require.NoError(t, err)
	assert.Equal(t, InPerson, got)

	got, err = ParseSessionType(" VIDEO ")
	require.NoError(t, err)
	assert.Equal(t, Video, got)

	_, err = ParseSessionType("carrier-pigeon")
	assert.ErrorIs(t, err, ErrUnknownSessionType)
}

func TestSessionTypeRejectsUnknownOnMarshal(t *testing.T) {
	_, err := json.Marshal(struct {
		T SessionType `json:"t"`
	}{T: SessionType(9)})
	assert.Error(t, err)
}

func TestSetClientFieldRelay(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.SetClientField(FieldClientName, "John Doe"))
	require.NoError(t, d.SetClientField(FieldClientPhone, "5551234567"))
	require.NoError(t, d.SetClientField(FieldClientEmail, "john@example.com"))
	require.NoError(t, d.SetClientField(FieldNotes, "first visit"))

	assert.Equal(t, "John Doe", d.ClientName)
	assert.Equal(t, "5551234567", d.ClientPhone)
	assert.Equal(t, "john@example.com", d.ClientEmail)
	assert.Equal(t, "first visit", d.Notes)

	before := d
	err := d.SetClientField("time", "9:00 AM")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, before, d)
}

func TestSetDateKeepsCalendarDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d := NewDraft()
	d.SetDate(time.Date(2026, 11, 3, 23, 45, 0, 0, loc))

	require.True(t, d.HasDate())
	assert.Equal(t, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC), *d.Date)
}

func TestCloneIsDeep(t *testing.T) {
	d := NewDraft()
	d.SetDate(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC))
	c := d.Clone()
	c.SetDate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2026, d.Date.Year())
}

func TestAdvisories(t *testing.T) {
	d := NewDraft()
	fields := map[string]bool{}
	for _, a := range d.Advisories() {
		fields[a.Field] = true
	}
	assert.True(t, fields[FieldClientName])
	assert.True(t, fields[FieldClientPhone])
	assert.True(t, fields[FieldClientEmail])

	d.ClientName = "John Doe"
	d.ClientPhone = "5551234567"
	d.ClientEmail = "john@example.com"
	assert.Empty(t, d.Advisories())

	d.ClientPhone = "(555) 123-4567"
	advisories := d.Advisories()
	require.Len(t, advisories, 1)
	assert.Equal(t, FieldClientPhone, advisories[0].Field)
}
