package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restart_notifier"

// Suppression reasons.
const (
	SuppressedThrottled = "throttled"
	SuppressedNoRoute   = "no_route"
)

// Delivery results.
const (
	DeliverySuccess = "success"
	DeliveryFailure = "failure"
)

var factory = promauto.With(prometheus.DefaultRegisterer)

var (
	restartsDetectedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "container_restarts_detected_total",
			Help:      "Container restarts observed as a restart count increase on a known pod.",
		},
		[]string{"namespace"},
	)

	notificationsSuppressedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_suppressed_total",
			Help:      "Detected restarts that did not produce an alert, by reason.",
		},
		[]string{"reason"},
	)

	alertsEnqueuedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_enqueued_total",
			Help:      "Alerts handed to the delivery queue, by destination channel.",
		},
		[]string{"channel"},
	)

	logFetchFailuresTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_fetch_failures_total",
			Help:      "Previous container log fetches that failed or timed out.",
		},
	)

	deliveriesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Alert deliveries to the messaging platform, by result.",
		},
		[]string{"result"},
	)

	eventSourceErrorsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_source_errors_total",
			Help:      "Errors returned by the pod event source. The watch loop keeps running.",
		},
	)

	trackedPods = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_pods",
			Help:      "Pods currently held in the restart ledger.",
		},
	)

	alertQueueLength = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert_queue_length",
			Help:      "Alerts waiting for delivery.",
		},
	)
)

// RecordRestartDetected counts a restart count increase.
func RecordRestartDetected(namespace string) {
	restartsDetectedTotal.WithLabelValues(namespace).Inc()
}

// RecordNotificationSuppressed counts a restart that was not alerted.
func RecordNotificationSuppressed(reason string) {
	notificationsSuppressedTotal.WithLabelValues(reason).Inc()
}

func RecordAlertEnqueued(channel string) {
	alertsEnqueuedTotal.WithLabelValues(channel).Inc()
}

func RecordLogFetchFailure() {
	logFetchFailuresTotal.Inc()
}

// RecordDelivery counts one delivery attempt with DeliverySuccess or DeliveryFailure.
func RecordDelivery(result string) {
	deliveriesTotal.WithLabelValues(result).Inc()
}

func RecordEventSourceError() {
	eventSourceErrorsTotal.Inc()
}

func SetTrackedPods(n int) {
	trackedPods.Set(float64(n))
}

func SetAlertQueueLength(n int) {
	alertQueueLength.Set(float64(n))
}
