package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Studio-Server Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Token issuance
	TokensIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "tokens_issued_total",
			Help:      "Conversation tokens issued by entry flow",
		},
		[]string{"flow"},
	)

	// Identity resolution outcomes
	IdentityResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "identity_resolutions_total",
			Help:      "Identity resolution outcomes (matched/created)",
		},
		[]string{"outcome"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "messages_total",
			Help:      "Messages appended by sender type",
		},
		[]string{"sender_type"},
	)

	// Websocket gauges and counters
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "active_connections",
			Help:      "Currently open websocket connections",
		},
	)

	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "broadcasts_total",
			Help:      "Room broadcasts by room kind",
		},
		[]string{"room"},
	)

	// Booking
	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected by the collision window",
		},
	)

	AppointmentsScheduledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "appointments_scheduled_total",
			Help:      "Appointments scheduled by source",
		},
		[]string{"source"},
	)

	// Webhooks
	WebhookDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "server",
			Name:      "webhook_deliveries_total",
			Help:      "Webhook deliveries by provider and dedupe result",
		},
		[]string{"provider", "result"},
	)
)

// RecordRequest records an HTTP request with duration.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordRouting records the attribution outcome of a routed interaction and,
// when a conversation was minted for it, the creation.
func RecordRouting(identityCreated, conversationCreated bool) {
	outcome := "matched"
	if identityCreated {
		outcome = "created"
	}
	IdentityResolutionsTotal.WithLabelValues(outcome).Inc()
	if conversationCreated {
		ConversationsCreatedTotal.Inc()
	}
}

// RecordWebhook records a webhook delivery outcome.
func RecordWebhook(provider string, firstDelivery bool) {
	result := "processed"
	if !firstDelivery {
		result = "duplicate"
	}
	WebhookDeliveriesTotal.WithLabelValues(provider, result).Inc()
}
