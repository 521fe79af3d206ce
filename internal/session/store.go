package session

import (
	"context"
	"fmt"
	"time"

	"github.com/wolfman30/practice-booking/internal/appointment"
	"github.com/wolfman30/practice-booking/internal/wizard"
)

// DefaultTTL bounds how long wizard state and hand-off records live.
const DefaultTTL = 24 * time.Hour

// Confirmation is the record handed from a finished wizard to the
// confirmation view. It is written once and read back by ID.
type Confirmation struct {
	ID          string            `json:"id"`
	Draft       appointment.Draft `json:"appointmentData"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// Store keeps wizard progress per browser session and the submitted
// hand-off records. Missing entries are reported as nil with a nil error.
type Store interface {
	LoadWizard(ctx context.Context, sessionID string) (*wizard.State, error)
	SaveWizard(ctx context.Context, sessionID string, state wizard.State) error
	ResetWizard(ctx context.Context, sessionID string) error
	SaveConfirmation(ctx context.Context, rec Confirmation) error
	LoadConfirmation(ctx context.Context, id string) (*Confirmation, error)
}

func wizardKey(sessionID string) string {
	return fmt.Sprintf("wizard:%s", sessionID)
}

func confirmationKey(id string) string {
	return fmt.Sprintf("appointmentData:%s", id)
}
