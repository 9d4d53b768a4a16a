package chathub

import (
	"chatrelay/backend/internal/models"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	DefaultMaxMessageSize = 8192
)

// WebSocketClient implements Client over a gorilla websocket connection.
type WebSocketClient struct {
	ConnectionID   string
	Conn           *websocket.Conn
	Hub            *ManagerService
	Send           chan models.OutboundEvent
	MaxMessageSize int64
	Log            zerolog.Logger
}

// NewWebSocketClient wires a freshly upgraded connection to the hub.
func NewWebSocketClient(hub *ManagerService, conn *websocket.Conn, connectionID string, sendBuffer int, maxMessageSize int64, log zerolog.Logger) *WebSocketClient {
	if maxMessageSize <= 0 {
		maxMessageSize = DefaultMaxMessageSize
	}
	return &WebSocketClient{
		ConnectionID:   connectionID,
		Conn:           conn,
		Hub:            hub,
		Send:           make(chan models.OutboundEvent, sendBuffer),
		MaxMessageSize: maxMessageSize,
		Log:            log.With().Str("connection_id", connectionID).Logger(),
	}
}

func (c *WebSocketClient) GetConnectionID() string                     { return c.ConnectionID }
func (c *WebSocketClient) GetSendChannel() chan<- models.OutboundEvent { return c.Send }

// Run starts the pumps for the websocket.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which makes writePump send a close frame.
func (c *WebSocketClient) Close() {
	close(c.Send)
}
