package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	t.Run("suppressed by reason", func(t *testing.T) {
		before := testutil.ToFloat64(notificationsSuppressedTotal.WithLabelValues(SuppressedThrottled))

		RecordNotificationSuppressed(SuppressedThrottled)
		RecordNotificationSuppressed(SuppressedThrottled)

		after := testutil.ToFloat64(notificationsSuppressedTotal.WithLabelValues(SuppressedThrottled))
		require.InDelta(t, before+2, after, 0)
	})

	t.Run("deliveries by result", func(t *testing.T) {
		beforeOK := testutil.ToFloat64(deliveriesTotal.WithLabelValues(DeliverySuccess))
		beforeFail := testutil.ToFloat64(deliveriesTotal.WithLabelValues(DeliveryFailure))

		RecordDelivery(DeliverySuccess)
		RecordDelivery(DeliveryFailure)
		RecordDelivery(DeliveryFailure)

		require.InDelta(t, beforeOK+1, testutil.ToFloat64(deliveriesTotal.WithLabelValues(DeliverySuccess)), 0)
		require.InDelta(t, beforeFail+2, testutil.ToFloat64(deliveriesTotal.WithLabelValues(DeliveryFailure)), 0)
	})

	t.Run("gauges are set not added", func(t *testing.T) {
		SetTrackedPods(7)
		SetTrackedPods(3)
		require.InDelta(t, 3, testutil.ToFloat64(trackedPods), 0)

		SetAlertQueueLength(12)
		require.InDelta(t, 12, testutil.ToFloat64(alertQueueLength), 0)
	})
}
