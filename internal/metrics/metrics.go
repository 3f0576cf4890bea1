// Package metrics holds the Prometheus collectors of the synthtel service itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "synthtel"

var (
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route, and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10),
		},
		[]string{"method", "route"},
	)

	// PointsGeneratedTotal counts synthesized points by metric kind.
	PointsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_generated_total",
			Help:      "Total number of synthesized time-series points.",
		},
		[]string{"metric"},
	)

	AnomaliesInjectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_injected_total",
			Help:      "Total number of anomaly windows injected, by shape.",
		},
		[]string{"kind"},
	)

	ScenariosGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_generated_total",
			Help:      "Total number of incident scenarios generated.",
		},
		[]string{"scenario"},
	)

	// TelegramMessagesTotal counts outbound chat messages; status is sent or failed.
	TelegramMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telegram_messages_total",
			Help:      "Total number of Telegram messages by kind and status.",
		},
		[]string{"kind", "status"},
	)
)
