package models

import "errors"

var (
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrUnknownEvent      = errors.New("unknown event")
	ErrInvalidPayload    = errors.New("invalid payload")
)
