package appointment

import "errors"

var (
	// ErrUnknownSessionType is returned for a session type outside in-person, video and phone
	ErrUnknownSessionType = errors.New("appointment: unknown session type")

	// ErrUnknownField is returned when the client form relays a field the draft does not have
	ErrUnknownField = errors.New("appointment: unknown client field")

	// ErrInvalidDate is returned when a serialized date cannot be parsed
	ErrInvalidDate = errors.New("appointment: invalid date")
)
