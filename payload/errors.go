package payload

import "errors"

var (
	// ErrUnknownKind is returned when a message carries a type outside the known set.
	ErrUnknownKind = errors.New("unknown message type")

	// ErrInvalidChannel is returned when a decoded message was not produced on the mobile channel.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrInvalidTimestamp is returned when a wire timestamp is not ISO-8601.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
