package chathub

import "chatrelay/backend/internal/models"

// Client is the interface for one live connection held by the hub.
// It abstracts the underlying transport so the hub can be exercised without
// a real websocket.
type Client interface {
	// GetConnectionID returns the transport-assigned id, unique for the
	// lifetime of the connection.
	GetConnectionID() string

	// GetSendChannel returns the channel the hub pushes outbound events to.
	// The hub never blocks on it.
	GetSendChannel() chan<- models.OutboundEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close stops the write pump. It is called exactly once, by the hub.
	Close()
}

// Inbound is a decoded event together with the connection it arrived on.
type Inbound struct {
	ConnectionID string
	Event        models.InboundEvent
}
