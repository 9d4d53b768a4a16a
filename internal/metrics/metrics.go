// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Connection metrics
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatrelay_connections_active",
			Help: "Live websocket connections registered with the hub",
		},
	)

	RosterIdentities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatrelay_roster_identities",
			Help: "Distinct identities present in the roster",
		},
	)

	// Routing metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatrelay_events_total",
			Help: "Inbound events handled by the router",
		},
		[]string{"event"},
	)

	MessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatrelay_messages_total",
			Help: "Direct messages appended to history",
		},
	)

	HistoryMessages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatrelay_history_messages",
			Help: "Messages currently held in memory",
		},
	)

	InvalidFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatrelay_invalid_frames_total",
			Help: "Inbound frames rejected before reaching the router",
		},
		[]string{"reason"},
	)

	// Delivery metrics
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatrelay_deliveries_total",
			Help: "Outbound events queued for a connection",
		},
		[]string{"event"},
	)

	DeliveriesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatrelay_deliveries_dropped_total",
			Help: "Outbound events dropped because the connection buffer was full",
		},
	)

	MirrorDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatrelay_mirror_dropped_total",
			Help: "Mirror events dropped because the publish queue was full",
		},
	)

	MirrorLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatrelay_mirror_publish_seconds",
			Help:    "Redis publish latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
	)
)
