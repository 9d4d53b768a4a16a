package chathub

import (
	"chatrelay/backend/internal/metrics"
	"chatrelay/backend/internal/models"
	"context"

	"github.com/rs/zerolog"
)

// ManagerService is the hub: it owns the set of live clients and runs every
// router transition on a single goroutine, so events from one connection are
// handled in the order they were read.
type ManagerService struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	IncomingCh   chan Inbound

	Router *Router

	log  zerolog.Logger
	done chan struct{}
}

// NewManagerService creates a hub. SetRouter must be called before Run.
func NewManagerService(log zerolog.Logger) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		IncomingCh:   make(chan Inbound),
		log:          log.With().Str("component", "hub").Logger(),
		done:         make(chan struct{}),
	}
}

// SetRouter attaches the router that handles inbound events. The router in
// turn uses the hub as its Transport.
func (m *ManagerService) SetRouter(router *Router) {
	m.Router = router
}

// Register hands a new client to the hub. It returns false once the hub has
// stopped.
func (m *ManagerService) Register(c Client) bool {
	select {
	case m.RegisterCh <- c:
		return true
	case <-m.done:
		return false
	}
}

// Unregister reports that a client's connection is gone.
func (m *ManagerService) Unregister(c Client) {
	select {
	case m.UnregisterCh <- c:
	case <-m.done:
	}
}

// Submit queues an inbound event. It returns false once the hub has stopped.
func (m *ManagerService) Submit(in Inbound) bool {
	select {
	case m.IncomingCh <- in:
		return true
	case <-m.done:
		return false
	}
}

// Done is closed when Run returns.
func (m *ManagerService) Done() <-chan struct{} {
	return m.done
}

// Run is the hub loop. It returns when ctx is cancelled, after closing every
// remaining client.
func (m *ManagerService) Run(ctx context.Context) {
	m.log.Info().Msg("initialised")
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			for id, c := range m.Clients {
				delete(m.Clients, id)
				c.Close()
			}
			metrics.ConnectionsActive.Set(0)
			m.log.Info().Msg("hub stopped")
			return

		case c := <-m.RegisterCh:
			m.Clients[c.GetConnectionID()] = c
			metrics.ConnectionsActive.Set(float64(len(m.Clients)))
			m.log.Debug().Str("connection_id", c.GetConnectionID()).Msg("new connection")

		case c := <-m.UnregisterCh:
			id := c.GetConnectionID()
			if _, ok := m.Clients[id]; !ok {
				continue
			}
			delete(m.Clients, id)
			c.Close()
			metrics.ConnectionsActive.Set(float64(len(m.Clients)))
			m.Router.Disconnect(id)

		case in := <-m.IncomingCh:
			// Only registered connections may reach the router, so a closed
			// connection can never rejoin the roster.
			if _, ok := m.Clients[in.ConnectionID]; !ok {
				m.log.Debug().Str("connection_id", in.ConnectionID).Msg("dropping event from closed connection")
				continue
			}
			m.Router.Dispatch(in.ConnectionID, in.Event)
		}
	}
}

// Send implements Transport. It must only be called from the hub goroutine.
func (m *ManagerService) Send(connectionID string, event models.OutboundEvent) {
	c, ok := m.Clients[connectionID]
	if !ok {
		return
	}
	m.push(c, event)
}

// Broadcast implements Transport. It must only be called from the hub goroutine.
func (m *ManagerService) Broadcast(event models.OutboundEvent) {
	for _, c := range m.Clients {
		m.push(c, event)
	}
}

func (m *ManagerService) push(c Client, event models.OutboundEvent) {
	select {
	case c.GetSendChannel() <- event:
		metrics.DeliveriesTotal.WithLabelValues(event.Event).Inc()
	default:
		metrics.DeliveriesDropped.Inc()
		m.log.Warn().
			Str("connection_id", c.GetConnectionID()).
			Str("event", event.Event).
			Msg("send buffer full, dropping event")
	}
}
