package appointment

import (
	"net/mail"
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Advisory is a non-blocking hint about a client information field. The
// wizard never refuses to submit because of one.
type Advisory struct {
	Field   string
	Message string
}

// Advisories mirrors the browser-native required/pattern hints of the client
// information form.
func (d Draft) Advisories() []Advisory {
	var out []Advisory
	if strings.TrimSpace(d.ClientName) == "" {
		out = append(out, Advisory{Field: FieldClientName, Message: "Please enter your full name"})
	}
	if !phonePattern.MatchString(strings.TrimSpace(d.ClientPhone)) {
		out = append(out, Advisory{Field: FieldClientPhone, Message: "Enter a 10-digit phone number"})
	}
	email := strings.TrimSpace(d.ClientEmail)
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		out = append(out, Advisory{Field: FieldClientEmail, Message: "Enter a valid email address"})
	}
	return out
}
