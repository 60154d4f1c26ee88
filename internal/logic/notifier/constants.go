package notifier

import "time"

const (
	// DefaultThrottleThreshold is the number of restarts that are always notified.
	DefaultThrottleThreshold = 10

	// DefaultThrottleInterval spaces notifications after the threshold. With the
	// kubelet's 5 minute crash-loop back-off this is roughly one alert every 2 hours.
	DefaultThrottleInterval = 24

	DefaultLogTailLines    = 500
	DefaultLogFetchTimeout = 10 * time.Second

	// consecutiveSourceErrorsUnhealthy marks the watch loop unhealthy in Ping.
	consecutiveSourceErrorsUnhealthy = 3

	logFetchTimeoutReason = "timeout elapsed"
)
