package chathub

import (
	"chatrelay/backend/internal/metrics"
	"chatrelay/backend/internal/models"
	"errors"
	"time"

	"github.com/gorilla/websocket"
)

// readPump decodes frames from the websocket and submits them to the hub.
// Malformed frames are logged and skipped; they never reach the router.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.MaxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Log.Warn().Err(err).Msg("error reading message")
			}
			return
		}

		event, err := models.DecodeInbound(raw)
		if err != nil {
			metrics.InvalidFrames.WithLabelValues(rejectReason(err)).Inc()
			c.Log.Warn().Err(err).Msg("rejected inbound frame")
			continue
		}

		if !c.Hub.Submit(Inbound{ConnectionID: c.ConnectionID, Event: event}) {
			return
		}
	}
}

// writePump writes queued outbound events to the websocket, one JSON frame each.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(event); err != nil {
				c.Log.Debug().Err(err).Str("event", event.Event).Msg("write failed")
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, models.ErrMalformedEnvelope):
		return "malformed"
	case errors.Is(err, models.ErrUnknownEvent):
		return "unknown_event"
	case errors.Is(err, models.ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "other"
	}
}
