package chathub

import (
	"chatrelay/backend/internal/metrics"
	"chatrelay/backend/internal/models"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Transport delivers outbound events. Delivery is best-effort: unknown
// connections and full buffers are silently skipped.
type Transport interface {
	Send(connectionID string, event models.OutboundEvent)
	Broadcast(event models.OutboundEvent)
}

// Router maps inbound events to roster/history transitions and decides which
// connections get notified. Its only state is the Roster and History it owns.
type Router struct {
	Roster  *Roster
	History *History

	transport Transport
	mirror    Mirror
	log       zerolog.Logger

	clock *clock
	newID func() string
}

// NewRouter builds a Router with an empty roster and history.
// A nil mirror is replaced by NopMirror.
func NewRouter(log zerolog.Logger, transport Transport, mirror Mirror) *Router {
	if mirror == nil {
		mirror = NopMirror{}
	}
	return &Router{
		Roster:    NewRoster(),
		History:   NewHistory(),
		transport: transport,
		mirror:    mirror,
		log:       log.With().Str("component", "router").Logger(),
		clock:     &clock{now: time.Now},
		newID:     uuid.NewString,
	}
}

// Dispatch routes a validated inbound event received on connectionID.
func (r *Router) Dispatch(connectionID string, event models.InboundEvent) {
	metrics.EventsTotal.WithLabelValues(event.Kind()).Inc()

	switch ev := event.(type) {
	case models.Login:
		r.Join(connectionID, ev)
	case models.ServerMessage:
		r.SendMessage(ev)
	case models.GetMessages:
		r.QueryHistory(ev)
	default:
		r.log.Warn().Str("event", event.Kind()).Msg("unhandled inbound event")
	}
}

// Join adds the connection to the roster and broadcasts the updated roster
// to every live connection.
func (r *Router) Join(connectionID string, login models.Login) {
	r.Roster.AddConnection(models.PresenceEntry{
		ConnectionID: connectionID,
		Identity:     login.Identity,
		DisplayName:  login.DisplayName,
		AvatarRef:    login.AvatarRef,
		Username:     login.Username,
		JoinedAt:     time.Now(),
	})
	r.log.Info().
		Str("connection_id", connectionID).
		Str("identity", login.Identity).
		Msg("user added to the list")

	r.broadcastRoster()
}

// SendMessage stores a new message and delivers the whole thread between
// sender and recipient to every connection of both identities.
func (r *Router) SendMessage(in models.ServerMessage) models.Message {
	msg := models.Message{
		ID:                r.newID(),
		SenderIdentity:    in.SenderIdentity,
		SenderDisplayName: in.SenderDisplayName,
		SenderAvatarRef:   in.SenderAvatarRef,
		RecipientIdentity: in.RecipientIdentity,
		SentAt:            r.clock.Millis(),
		Body:              in.Body,
	}
	r.History.Append(msg)
	metrics.MessagesTotal.Inc()
	metrics.HistoryMessages.Set(float64(r.History.Len()))
	r.mirror.PublishMessage(msg)

	to := r.Roster.ConnectionsForIdentity(in.RecipientIdentity)
	from := r.Roster.ConnectionsForIdentity(in.SenderIdentity)
	thread := r.History.MessagesBetween(in.SenderIdentity, in.RecipientIdentity)

	r.log.Info().
		Str("message_id", msg.ID).
		Str("from", msg.SenderIdentity).
		Str("to", msg.RecipientIdentity).
		Int("recipient_connections", len(to)).
		Msg("message received")

	r.deliver(append(to, from...), models.ClientMessage(thread))
	return msg
}

// QueryHistory sends the thread between from and to back to the connections
// of from only.
func (r *Router) QueryHistory(q models.GetMessages) {
	thread := r.History.MessagesBetween(q.FromIdentity, q.ToIdentity)
	r.deliver(r.Roster.ConnectionsForIdentity(q.FromIdentity), models.ClientGetMessages(thread))
}

// Disconnect removes the connection and broadcasts the updated roster.
// Calling it for an unknown or already removed connection only rebroadcasts.
func (r *Router) Disconnect(connectionID string) {
	r.Roster.RemoveConnection(connectionID)
	r.log.Info().Str("connection_id", connectionID).Msg("user disconnected")

	r.broadcastRoster()
}

func (r *Router) broadcastRoster() {
	entries := r.Roster.AllEntries()
	users := lo.Map(entries, func(e models.PresenceEntry, _ int) models.RosterUser {
		return e.RosterUser()
	})
	metrics.RosterIdentities.Set(float64(len(users)))

	r.transport.Broadcast(models.UserList(users))
	r.mirror.PublishRoster(users)
}

// deliver sends event once to each distinct connection among targets.
func (r *Router) deliver(targets []models.PresenceEntry, event models.OutboundEvent) {
	ids := lo.Uniq(lo.Map(targets, func(e models.PresenceEntry, _ int) string {
		return e.ConnectionID
	}))
	for _, id := range ids {
		r.transport.Send(id, event)
	}
}

// clock hands out epoch milliseconds that never go backwards.
type clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func (c *clock) Millis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms < c.last {
		ms = c.last
	}
	c.last = ms
	return ms
}
