package timeslots

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("practice.internal.timeslots")

// DefaultDelay is how long the mock provider pretends to talk to a scheduler.
const DefaultDelay = 800 * time.Millisecond

// Slot is a bookable time of day.
type Slot struct {
	Label     string `json:"time"`
	Available bool   `json:"available"`
}

// Provider lists the time slots offered on a date.
type Provider interface {
	Slots(ctx context.Context, date time.Time) ([]Slot, error)
}

// defaultSlots is the fixed day offered by MockProvider.
var defaultSlots = []Slot{
	{Label: "9:00 AM", Available: true},
	{Label: "10:00 AM", Available: true},
	{Label: "11:00 AM", Available: true},
	{Label: "12:00 PM", Available: false},
	{Label: "1:00 PM", Available: true},
	{Label: "2:00 PM", Available: true},
	{Label: "3:00 PM", Available: false},
	{Label: "4:00 PM", Available: true},
	{Label: "5:00 PM", Available: true},
	{Label: "6:00 PM", Available: false},
	{Label: "7:00 PM", Available: true},
}

// MockProvider returns a hardcoded day after a fixed delay. It stands in for
// a scheduling service with real conflict tracking.
type MockProvider struct {
	delay time.Duration
	slots []Slot
}

// NewMockProvider creates a mock provider. A negative delay is treated as zero.
func NewMockProvider(delay time.Duration) *MockProvider {
	if delay < 0 {
		delay = 0
	}
	return &MockProvider{delay: delay, slots: defaultSlots}
}

// Slots waits for the configured delay and returns a copy of the fixed list.
// Canceling ctx abandons the wait and returns ctx.Err().
func (p *MockProvider) Slots(ctx context.Context, date time.Time) ([]Slot, error) {
	ctx, span := tracer.Start(ctx, "timeslots.mock_fetch")
	defer span.End()
	span.SetAttributes(attribute.String("booking.date", date.Format("2006-01-02")))

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Slot, len(p.slots))
	copy(out, p.slots)
	return out, nil
}

// Find returns the slot with the given label.
func Find(slots []Slot, label string) (Slot, bool) {
	for _, s := range slots {
		if s.Label == label {
			return s, true
		}
	}
	return Slot{}, false
}

// Selectable reports whether label names an available slot.
func Selectable(slots []Slot, label string) bool {
	s, ok := Find(slots, label)
	return ok && s.Available
}
