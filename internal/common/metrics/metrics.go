// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LayoutNone labels payloads where no known layout produced data.
const LayoutNone = "none"

var (
	WebhooksReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_webhooks_received_total",
			Help: "Total number of lead webhooks received, by outcome",
		},
		[]string{"outcome"},
	)

	WebhookErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_webhook_errors_total",
			Help: "Total number of failed lead webhooks, by error code",
		},
		[]string{"error_code"},
	)

	ExtractionLayout = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_extraction_layout_total",
			Help: "Payload layout that supplied the collected data",
		},
		[]string{"layout"},
	)

	NotificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lead_notification_send_duration_seconds",
			Help:    "Duration of notification delivery calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_failed_total",
			Help: "Total number of failed notification deliveries",
		},
		[]string{"provider", "channel"},
	)

	WebhooksActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lead_webhooks_active",
			Help: "Number of lead webhooks currently being processed",
		},
	)
)

// LayoutLabel maps an empty layout name to LayoutNone.
func LayoutLabel(layout string) string {
	if layout == "" {
		return LayoutNone
	}
	return layout
}
