package models

import "encoding/json"

// Inbound event kinds sent by clients.
const (
	EventLogin             = "login"
	EventServerMessage     = "server-message"
	EventServerGetMessages = "server-get-messages"
)

// Outbound event kinds sent by the relay.
const (
	EventUserList          = "user-list"
	EventClientMessage     = "client-message"
	EventClientGetMessages = "client-get-messages"
)

// Envelope is the frame format on the websocket: {"event": ..., "data": ...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// InboundEvent is one of Login, ServerMessage or GetMessages.
// Values are only produced by DecodeInbound, after validation.
type InboundEvent interface {
	Kind() string
	inbound()
}

// Login announces the identity behind a connection.
type Login struct {
	Identity    string `json:"employeeCode" validate:"required,max=128"`
	DisplayName string `json:"fullname" validate:"max=256"`
	AvatarRef   string `json:"profilePic" validate:"max=2048"`
	Username    string `json:"username" validate:"max=128"`
}

// ServerMessage is a direct message from one identity to another.
type ServerMessage struct {
	SenderIdentity    string `json:"fromEmployeeCode" validate:"required,max=128"`
	SenderDisplayName string `json:"fromName" validate:"max=256"`
	SenderAvatarRef   string `json:"fromProfilePic" validate:"max=2048"`
	RecipientIdentity string `json:"toEmployeeCode" validate:"required,max=128"`
	Body              string `json:"message" validate:"required"`
}

// GetMessages asks for the thread between two identities.
type GetMessages struct {
	FromIdentity string `json:"fromEmployeeCode" validate:"required,max=128"`
	ToIdentity   string `json:"toEmployeeCode" validate:"required,max=128"`
}

func (Login) Kind() string         { return EventLogin }
func (ServerMessage) Kind() string { return EventServerMessage }
func (GetMessages) Kind() string   { return EventServerGetMessages }

func (Login) inbound()         {}
func (ServerMessage) inbound() {}
func (GetMessages) inbound()   {}

// OutboundEvent is a typed event delivered to one or more connections.
type OutboundEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func UserList(users []RosterUser) OutboundEvent {
	if users == nil {
		users = []RosterUser{}
	}
	return OutboundEvent{Event: EventUserList, Data: users}
}

func ClientMessage(thread []Message) OutboundEvent {
	return OutboundEvent{Event: EventClientMessage, Data: nonNil(thread)}
}

func ClientGetMessages(thread []Message) OutboundEvent {
	return OutboundEvent{Event: EventClientGetMessages, Data: nonNil(thread)}
}

func nonNil(thread []Message) []Message {
	if thread == nil {
		return []Message{}
	}
	return thread
}
