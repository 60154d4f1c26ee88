package config

import "time"

// Env key constants. All notifier configuration env vars use RESTART_NOTIFIER_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "RESTART_NOTIFIER_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "RESTART_NOTIFIER_KUBE_MASTER"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "RESTART_NOTIFIER_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "RESTART_NOTIFIER_LOG_FORMAT"

// Port for health/readiness HTTP server.
const envKeyHTTPPort = "RESTART_NOTIFIER_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "RESTART_NOTIFIER_METRICS_PORT"

// Slack bot token (xoxb-...). Required; SLACK_TOKEN is used as fallback.
const envKeySlackToken = "RESTART_NOTIFIER_SLACK_TOKEN"

// Routing rules, e.g. "kube-system/*/*=,*/*/*=alerts". Required;
// SLACK_NOTIFICATION_CONFIG is used as fallback.
const envKeyNotificationConfig = "RESTART_NOTIFIER_SLACK_NOTIFICATION_CONFIG"

// Slack Web API base URL, ends with a slash.
const envKeySlackAPIURL = "RESTART_NOTIFIER_SLACK_API_URL"

// Cron expression for the full pod relist; "off" disables it.
const envKeyResyncSchedule = "RESTART_NOTIFIER_RESYNC_SCHEDULE"

// Alerts kept in memory between detection and delivery.
const (
	envKeyQueueCapacity = "RESTART_NOTIFIER_QUEUE_CAPACITY"
	envMinQueueCapacity = 1
)

// Restarts always notified before throttling kicks in; 0 throttles from the first one.
const envKeyThrottleThreshold = "RESTART_NOTIFIER_THROTTLE_THRESHOLD"

// Every N-th restart past the threshold is notified.
const (
	envKeyThrottleInterval = "RESTART_NOTIFIER_THROTTLE_INTERVAL"
	envMinThrottleInterval = 1
)

// Log lines fetched from the previous container instance.
const (
	envKeyLogTailLines = "RESTART_NOTIFIER_LOG_TAIL_LINES"
	envMinLogTailLines = 1
)

// Slack messages allowed per burst.
const (
	envKeyDeliveryBurst = "RESTART_NOTIFIER_DELIVERY_BURST"
	envMinDeliveryBurst = 1
)

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	envKeyPingerInterval = "RESTART_NOTIFIER_PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// Upper bound for one container log fetch.
const (
	envKeyLogFetchTimeout = "RESTART_NOTIFIER_LOG_FETCH_TIMEOUT"
	envMinLogFetchTimeout = time.Second
)

// Minimum spacing between two Slack messages once the burst is spent.
const (
	envKeyDeliveryInterval = "RESTART_NOTIFIER_DELIVERY_INTERVAL"
	envMinDeliveryInterval = 10 * time.Millisecond
)

// Upper bound for delivering one alert (upload plus post).
const (
	envKeyDeliveryTimeout = "RESTART_NOTIFIER_DELIVERY_TIMEOUT"
	envMinDeliveryTimeout = time.Second
)

// Delay before the next list/watch call after a failed one.
const (
	envKeyWatchRetryDelay = "RESTART_NOTIFIER_WATCH_RETRY_DELAY"
	envMinWatchRetryDelay = 100 * time.Millisecond
)

// Original env keys used as fallback when RESTART_NOTIFIER_* are unset.
const (
	envKeyKubeConfigFallback         = "KUBECONFIG"
	envKeyKubeMasterFallback         = "KUBERNETES_MASTER"
	envKeySlackTokenFallback         = "SLACK_TOKEN"
	envKeyNotificationConfigFallback = "SLACK_NOTIFICATION_CONFIG"
)
