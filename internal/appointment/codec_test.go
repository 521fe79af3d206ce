package appointment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledDraft() Draft {
	d := NewDraft()
	d.SetDate(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC))
	d.Time = "2:00 PM"
	d.SessionType = Video
	d.ClientName = "John Doe"
	d.ClientPhone = "5551234567"
	d.ClientEmail = "john@example.com"
	d.Notes = "prefers afternoons"
	return d
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := filledDraft()

	data, err := Encode(d)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	require.NotNil(t, got.Date)
	assert.True(t, d.Date.Equal(*got.Date))
	assert.Equal(t, d.Time, got.Time)
	assert.Equal(t, d.SessionType, got.SessionType)
	assert.Equal(t, d.ClientName, got.ClientName)
	assert.Equal(t, d.ClientPhone, got.ClientPhone)
	assert.Equal(t, d.ClientEmail, got.ClientEmail)
	assert.Equal(t, d.Notes, got.Notes)
}

func TestEncodeWireShape(t *testing.T) {
	data, err := Encode(filledDraft())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2026-11-03T00:00:00Z", raw["date"])
	assert.Equal(t, "video", raw["sessionType"])
	for _, key := range []string{"time", "clientName", "clientPhone", "clientEmail", "notes"} {
		assert.Contains(t, raw, key)
	}
}

func TestEncodeNullDate(t *testing.T) {
	data, err := Encode(NewDraft())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":null`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Nil(t, got.Date)
	assert.Equal(t, InPerson, got.SessionType)
}

func TestDecodeAcceptsBrowserTimestamps(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso with millis", `{"date":"2026-11-03T00:00:00.000Z","sessionType":"phone"}`, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)},
		{"date only", `{"date":"2026-11-03"}`, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)},
		{"offset keeps its own day", `{"date":"2026-11-03T23:30:00+05:30"}`, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.raw))
			require.NoError(t, err)
			require.NotNil(t, got.Date)
			assert.True(t, tt.want.Equal(*got.Date), "got %s", got.Date)
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`{"date":"next tuesday"}`))
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Decode([]byte(`{"sessionType":"hologram"}`))
	assert.ErrorIs(t, err, ErrUnknownSessionType)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
