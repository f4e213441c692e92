package channel

import "errors"

var (
	// ErrInvalidChannelFormat is returned when an encoded channel does not have exactly three fields.
	ErrInvalidChannelFormat = errors.New("invalid channel format")
	// ErrUnknownChannelKind is returned for an unrecognized kind tag.
	ErrUnknownChannelKind = errors.New("unknown channel kind")
	// ErrInvalidChannel is returned when well-formed fields fail schema validation.
	ErrInvalidChannel = errors.New("invalid channel")
)
