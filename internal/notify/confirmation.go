package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/practice-booking/internal/appointment"
	"github.com/wolfman30/practice-booking/internal/confirmation"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

const (
	confirmationSubject = `Your appointment with {{.Practitioner}} on {{.Date}}`
	confirmationBody    = `Hello {{.ClientName}},

Your appointment with {{.Practitioner}}, {{.Title}} at {{.Practice}} is confirmed.

Date: {{.Date}}
Time: {{.Time}}
Session: {{.Session}}
{{- if .Notes}}
Notes: {{.Notes}}
{{- end}}

If you need to reschedule or cancel your appointment, please contact us at least 24 hours in advance.
`
)

// Practice identifies who the appointment is with.
type Practice struct {
	Name              string
	PractitionerName  string
	PractitionerTitle string
}

// ConfirmationNotifier emails the client a summary of a submitted booking.
type ConfirmationNotifier struct {
	sender   EmailSender
	practice Practice
	subject  *template.Template
	body     *template.Template
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewConfirmationNotifier parses the message templates once. A nil sender
// falls back to the stub.
func NewConfirmationNotifier(sender EmailSender, practice Practice, logger *logging.Logger) *ConfirmationNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	return &ConfirmationNotifier{
		sender:   sender,
		practice: practice,
		subject:  mustParse("subject", confirmationSubject),
		body:     mustParse("body", confirmationBody),
		logger:   logger,
		tracer:   otel.Tracer("practice.internal.notify"),
	}
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Parse(text))
}

// Notify sends the confirmation when the draft carries an email address.
// Drafts without one are skipped.
func (n *ConfirmationNotifier) Notify(ctx context.Context, draft appointment.Draft) error {
	to := strings.TrimSpace(draft.ClientEmail)
	if to == "" {
		n.logger.Debug("notify: no client email, skipping confirmation")
		return nil
	}

	ctx, span := n.tracer.Start(ctx, "notify.confirmation")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.session_type", draft.SessionType.String()))

	msg, err := n.Compose(draft)
	if err != nil {
		span.RecordError(err)
		return err
	}
	msg.To = to
	if err := n.sender.Send(ctx, msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("notify: send confirmation: %w", err)
	}
	return nil
}

// Compose renders the message for draft without a recipient.
func (n *ConfirmationNotifier) Compose(draft appointment.Draft) (EmailMessage, error) {
	data := map[string]string{
		"ClientName":   draft.ClientName,
		"Practitioner": n.practice.PractitionerName,
		"Title":        n.practice.PractitionerTitle,
		"Practice":     n.practice.Name,
		"Date":         confirmation.FormatDate(draft.Date),
		"Time":         draft.Time,
		"Session":      draft.SessionType.Label(),
		"Notes":        draft.Notes,
	}
	subject, err := execute(n.subject, data)
	if err != nil {
		return EmailMessage{}, err
	}
	body, err := execute(n.body, data)
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{ToName: draft.ClientName, Subject: subject, Body: body}, nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
