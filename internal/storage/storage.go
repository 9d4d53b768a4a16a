// Package storage publishes a copy of relay traffic to Redis pub/sub.
// Nothing is read back: history stays in memory.
package storage

import (
	"chatrelay/backend/internal/metrics"
	"chatrelay/backend/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const publishTimeout = 2 * time.Second

type mirrorEvent struct {
	channel string
	payload any
}

// RedisMirror implements chathub.Mirror. Publishes are queued and sent by Run,
// so the caller never waits on Redis.
type RedisMirror struct {
	Redis  *redis.Client
	Prefix string

	queue chan mirrorEvent
	log   zerolog.Logger
}

// Connect opens a Redis client and checks it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisMirror creates a mirror with a queue of bufferSize events.
func NewRedisMirror(rdb *redis.Client, prefix string, bufferSize int, log zerolog.Logger) *RedisMirror {
	return &RedisMirror{
		Redis:  rdb,
		Prefix: prefix,
		queue:  make(chan mirrorEvent, bufferSize),
		log:    log.With().Str("component", "mirror").Logger(),
	}
}

// MessagesChannel is where every stored message is published.
func (s *RedisMirror) MessagesChannel() string { return s.Prefix + ":messages" }

// PresenceChannel is where every roster broadcast is published.
func (s *RedisMirror) PresenceChannel() string { return s.Prefix + ":presence" }

func (s *RedisMirror) PublishMessage(msg models.Message) {
	s.enqueue(mirrorEvent{channel: s.MessagesChannel(), payload: msg})
}

func (s *RedisMirror) PublishRoster(users []models.RosterUser) {
	s.enqueue(mirrorEvent{channel: s.PresenceChannel(), payload: users})
}

func (s *RedisMirror) enqueue(ev mirrorEvent) {
	select {
	case s.queue <- ev:
	default:
		metrics.MirrorDropped.Inc()
		s.log.Warn().Str("channel", ev.channel).Msg("mirror queue full, dropping event")
	}
}

// Run publishes queued events until ctx is cancelled.
func (s *RedisMirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.queue:
			if err := s.publish(ctx, ev.channel, ev.payload); err != nil {
				s.log.Error().Err(err).Str("channel", ev.channel).Msg("failed to publish")
			}
		}
	}
}

// Pending is the number of events waiting to be published.
func (s *RedisMirror) Pending() int {
	return len(s.queue)
}

func (s *RedisMirror) publish(ctx context.Context, channel string, payload any) error {
	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	start := time.Now()
	err = s.Redis.Publish(ctx, channel, string(msgBytes)).Err()
	metrics.MirrorLatency.Observe(time.Since(start).Seconds())
	return err
}
