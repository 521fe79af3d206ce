package wizard

import (
	"errors"
	"time"

	"github.com/wolfman30/practice-booking/internal/appointment"
	"github.com/wolfman30/practice-booking/internal/calendar"
	"github.com/wolfman30/practice-booking/internal/timeslots"
)

// Step is a position in the booking flow.
type Step int

const (
	StepDate Step = iota + 1
	StepTimeAndType
	StepClientInfo
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepTimeAndType:
		return "time_and_type"
	case StepClientInfo:
		return "client_info"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	// ErrDateRequired blocks leaving the date step without a date.
	ErrDateRequired = errors.New("wizard: date required")
	// ErrTimeRequired blocks leaving the time step without a time slot.
	ErrTimeRequired = errors.New("wizard: time slot required")
	// ErrSubmitted is returned for any change after submission.
	ErrSubmitted = errors.New("wizard: booking already submitted")
	// ErrWrongStep is returned when an input arrives on a step that does not collect it.
	ErrWrongStep = errors.New("wizard: input not accepted on this step")
)

// Alert is the message shown to the user for a blocked transition, or ""
// when err is not one the user can fix.
func Alert(err error) string {
	switch {
	case errors.Is(err, ErrDateRequired):
		return "Please select a date"
	case errors.Is(err, ErrTimeRequired):
		return "Please select a time slot"
	case errors.Is(err, calendar.ErrPastDate):
		return "Please select a date that is not in the past"
	}
	return ""
}

// Wizard is the three-step booking state machine. It is not safe for
// concurrent use; callers load, mutate and save it per request.
type Wizard struct {
	step  Step
	draft appointment.Draft
}

// State is the serializable form of a Wizard.
type State struct {
	Step  Step              `json:"step"`
	Draft appointment.Draft `json:"draft"`
}

// Submission is produced once the client information step is confirmed.
type Submission struct {
	Draft       appointment.Draft
	SubmittedAt time.Time
}

// New starts a wizard on the date step with an empty draft.
func New() *Wizard {
	return &Wizard{step: StepDate, draft: appointment.NewDraft()}
}

// Restore rebuilds a wizard from a saved state, keeping the draft. Out of
// range steps restart on the date step, and a step whose guard the draft
// no longer satisfies falls back to the step that collects the missing
// value.
func Restore(s State) *Wizard {
	step := s.Step
	if step < StepDate || step > StepSubmitted {
		step = StepDate
	}
	if step > StepDate && !s.Draft.HasDate() {
		step = StepDate
	}
	if step > StepTimeAndType && !s.Draft.HasTime() {
		step = StepTimeAndType
	}
	return &Wizard{step: step, draft: s.Draft.Clone()}
}

// Snapshot returns the serializable state.
func (w *Wizard) Snapshot() State {
	return State{Step: w.step, Draft: w.draft.Clone()}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Draft returns a copy of the accumulated draft.
func (w *Wizard) Draft() appointment.Draft {
	return w.draft.Clone()
}

// SelectDate records the picked day. Days before today are rejected and the
// draft is left untouched.
func (w *Wizard) SelectDate(date, today time.Time) error {
	if err := w.accepting(StepDate); err != nil {
		return err
	}
	if err := calendar.Validate(date, today); err != nil {
		return err
	}
	w.draft.SetDate(date)
	return nil
}

// SelectTime records label when it names an available slot. Unknown and
// unavailable labels are ignored and false is returned.
func (w *Wizard) SelectTime(slots []timeslots.Slot, label string) (bool, error) {
	if err := w.accepting(StepTimeAndType); err != nil {
		return false, err
	}
	if !timeslots.Selectable(slots, label) {
		return false, nil
	}
	w.draft.Time = label
	return true, nil
}

// SetSessionType changes the session type on the time step.
func (w *Wizard) SetSessionType(t appointment.SessionType) error {
	if err := w.accepting(StepTimeAndType); err != nil {
		return err
	}
	w.draft.SessionType = t
	return nil
}

// SetClientField relays one client information field on the last step.
func (w *Wizard) SetClientField(name, value string) error {
	if err := w.accepting(StepClientInfo); err != nil {
		return err
	}
	return w.draft.SetClientField(name, value)
}

// Next advances one step. The date and time steps are guarded; on failure
// the wizard does not change. Leaving the client information step submits
// and returns the submission.
func (w *Wizard) Next(now time.Time) (*Submission, error) {
	switch w.step {
	case StepDate:
		if !w.draft.HasDate() {
			return nil, ErrDateRequired
		}
		w.step = StepTimeAndType
	case StepTimeAndType:
		if !w.draft.HasTime() {
			return nil, ErrTimeRequired
		}
		w.step = StepClientInfo
	case StepClientInfo:
		w.step = StepSubmitted
		return &Submission{Draft: w.draft.Clone(), SubmittedAt: now}, nil
	default:
		return nil, ErrSubmitted
	}
	return nil, nil
}

// Back moves one step towards the start without touching the draft. It is a
// no-op on the first step.
func (w *Wizard) Back() error {
	switch w.step {
	case StepTimeAndType, StepClientInfo:
		w.step--
	case StepSubmitted:
		return ErrSubmitted
	}
	return nil
}

func (w *Wizard) accepting(step Step) error {
	if w.step == StepSubmitted {
		return ErrSubmitted
	}
	if w.step != step {
		return ErrWrongStep
	}
	return nil
}

// Indicator is one entry of the progress bar.
type Indicator struct {
	Index   int
	Title   string
	Reached bool
}

var stepTitles = []string{"Date Selection", "Time & Type", "Your Information"}

// Progress lists the three step indicators, each reached once the wizard is
// at or past it.
func (w *Wizard) Progress() []Indicator {
	out := make([]Indicator, len(stepTitles))
	for i, title := range stepTitles {
		out[i] = Indicator{Index: i + 1, Title: title, Reached: int(w.step) >= i+1}
	}
	return out
}
