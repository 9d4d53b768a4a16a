package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeInbound parses one websocket frame into a validated InboundEvent.
// Errors wrap ErrMalformedEnvelope, ErrUnknownEvent or ErrInvalidPayload.
func DecodeInbound(raw []byte) (InboundEvent, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	var event InboundEvent
	switch env.Event {
	case EventLogin:
		var p Login
		if err := decodePayload(env.Data, &p); err != nil {
			return nil, err
		}
		event = p
	case EventServerMessage:
		var p ServerMessage
		if err := decodePayload(env.Data, &p); err != nil {
			return nil, err
		}
		event = p
	case EventServerGetMessages:
		var p GetMessages
		if err := decodePayload(env.Data, &p); err != nil {
			return nil, err
		}
		event = p
	case "":
		return nil, fmt.Errorf("%w: event name is missing", ErrMalformedEnvelope)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
	return event, nil
}

func decodePayload(data json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("%w: data is missing", ErrInvalidPayload)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
