package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesReceived counts stored chat messages per channel.
	MessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_received_total",
			Help: "Total number of chat messages stored per channel",
		},
		[]string{"channel"},
	)

	// MessagesSent counts outbound chat messages per channel.
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_sent_total",
			Help: "Total number of chat messages sent per channel",
		},
		[]string{"channel"},
	)

	// QueueEvictions counts messages dropped from the full message queue.
	QueueEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_queue_evictions_total",
			Help: "Total number of messages evicted from the full message queue",
		},
	)

	// ConnectionState reports the state of each chat connection
	// (0 disconnected, 1 connecting, 2 connected).
	ConnectionState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chat_connection_state",
			Help: "State of a chat connection: 0 disconnected, 1 connecting, 2 connected",
		},
		[]string{"conn"},
	)

	// RateLimitWait observes how long outbound lines waited on the
	// send budget.
	RateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_rate_limit_wait_seconds",
			Help:    "Time outbound lines spent waiting for the send budget",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// APIRequests counts platform API requests by endpoint and status.
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of platform API requests by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)
)
