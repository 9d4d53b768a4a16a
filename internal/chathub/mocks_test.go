package chathub_test

import (
	"chatrelay/backend/internal/models"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockMirror is a testify mock of chathub.Mirror.
type MockMirror struct {
	mock.Mock
}

func (m *MockMirror) PublishMessage(msg models.Message) {
	m.Called(msg)
}

func (m *MockMirror) PublishRoster(users []models.RosterUser) {
	m.Called(users)
}

// delivery is one outbound event recorded by recordingTransport.
// ConnectionID is empty for broadcasts.
type delivery struct {
	ConnectionID string
	Event        models.OutboundEvent
}

// recordingTransport captures every Send and Broadcast in call order.
type recordingTransport struct {
	mu         sync.Mutex
	deliveries []delivery
}

func (t *recordingTransport) Send(connectionID string, event models.OutboundEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deliveries = append(t.deliveries, delivery{ConnectionID: connectionID, Event: event})
}

func (t *recordingTransport) Broadcast(event models.OutboundEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deliveries = append(t.deliveries, delivery{Event: event})
}

func (t *recordingTransport) all() []delivery {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]delivery(nil), t.deliveries...)
}

func (t *recordingTransport) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deliveries = nil
}

// sentTo returns the events unicast to connectionID.
func (t *recordingTransport) sentTo(connectionID string) []models.OutboundEvent {
	var events []models.OutboundEvent
	for _, d := range t.all() {
		if d.ConnectionID == connectionID {
			events = append(events, d.Event)
		}
	}
	return events
}

// broadcasts returns the events sent to every connection.
func (t *recordingTransport) broadcasts() []models.OutboundEvent {
	return t.sentTo("")
}
