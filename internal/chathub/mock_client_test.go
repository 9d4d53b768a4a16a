package chathub_test

import (
	"chatrelay/backend/internal/models"
	"sync"
)

type MockClient struct {
	connectionID string
	RecvChannel  chan models.OutboundEvent

	mu     sync.Mutex
	closed bool
}

func newMockClient(connectionID string) *MockClient {
	return newMockClientWithBuffer(connectionID, 10)
}

func newMockClientWithBuffer(connectionID string, size int) *MockClient {
	return &MockClient{
		connectionID: connectionID,
		RecvChannel:  make(chan models.OutboundEvent, size),
	}
}

func (c *MockClient) GetConnectionID() string {
	return c.connectionID
}

func (c *MockClient) GetSendChannel() chan<- models.OutboundEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *MockClient) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

