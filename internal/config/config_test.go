package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/restart-notifier/internal/config"
)

type loadCase struct {
	name    string
	giveEnv map[string]string
	wantErr error
	wantCfg *config.Config
}

// envKeys are cleared before every case so the host environment does not leak in.
var envKeys = []string{
	"RESTART_NOTIFIER_KUBECONFIG",
	"RESTART_NOTIFIER_KUBE_MASTER",
	"RESTART_NOTIFIER_LOG_LEVEL",
	"RESTART_NOTIFIER_LOG_FORMAT",
	"RESTART_NOTIFIER_HTTP_PORT",
	"RESTART_NOTIFIER_METRICS_PORT",
	"RESTART_NOTIFIER_PINGER_INTERVAL",
	"RESTART_NOTIFIER_SLACK_TOKEN",
	"RESTART_NOTIFIER_SLACK_NOTIFICATION_CONFIG",
	"RESTART_NOTIFIER_SLACK_API_URL",
	"RESTART_NOTIFIER_RESYNC_SCHEDULE",
	"RESTART_NOTIFIER_QUEUE_CAPACITY",
	"RESTART_NOTIFIER_THROTTLE_THRESHOLD",
	"RESTART_NOTIFIER_THROTTLE_INTERVAL",
	"RESTART_NOTIFIER_LOG_TAIL_LINES",
	"RESTART_NOTIFIER_LOG_FETCH_TIMEOUT",
	"RESTART_NOTIFIER_DELIVERY_INTERVAL",
	"RESTART_NOTIFIER_DELIVERY_BURST",
	"RESTART_NOTIFIER_DELIVERY_TIMEOUT",
	"RESTART_NOTIFIER_WATCH_RETRY_DELAY",
	"KUBECONFIG",
	"KUBERNETES_MASTER",
	"SLACK_TOKEN",
	"SLACK_NOTIFICATION_CONFIG",
}

// requiredEnv is the minimal environment Load accepts.
func requiredEnv() map[string]string {
	return map[string]string{
		"RESTART_NOTIFIER_SLACK_TOKEN":               "xoxb-test",
		"RESTART_NOTIFIER_SLACK_NOTIFICATION_CONFIG": "*/*/*=alerts",
	}
}

func withEnv(extra map[string]string) map[string]string {
	env := requiredEnv()
	for k, v := range extra {
		env[k] = v
	}

	return env
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()

	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad(t *testing.T) {
	tests := []loadCase{
		{
			name:    "all defaults",
			giveEnv: requiredEnv(),
			wantCfg: &config.Config{
				LogLevel:           "info",
				LogFormat:          "json",
				HTTPPort:           "8080",
				MetricsPort:        "9090",
				PingerInterval:     10 * time.Second,
				SlackToken:         "xoxb-test",
				SlackAPIURL:        "https://slack.com/api/",
				NotificationConfig: "*/*/*=alerts",
				ResyncSchedule:     "0 */6 * * *",
				QueueCapacity:      320,
				ThrottleThreshold:  10,
				ThrottleInterval:   24,
				LogTailLines:       500,
				LogFetchTimeout:    10 * time.Second,
				DeliveryInterval:   time.Second,
				DeliveryBurst:      3,
				DeliveryTimeout:    30 * time.Second,
				WatchRetryDelay:    5 * time.Second,
			},
		},
		{
			name: "overrides with explicit units",
			giveEnv: withEnv(map[string]string{
				"RESTART_NOTIFIER_HTTP_PORT":          "8081",
				"RESTART_NOTIFIER_LOG_FORMAT":         "text",
				"RESTART_NOTIFIER_PINGER_INTERVAL":    "5s",
				"RESTART_NOTIFIER_LOG_FETCH_TIMEOUT":  "1m",
				"RESTART_NOTIFIER_DELIVERY_INTERVAL":  "250ms",
				"RESTART_NOTIFIER_RESYNC_SCHEDULE":    "off",
				"RESTART_NOTIFIER_THROTTLE_THRESHOLD": "0",
				"RESTART_NOTIFIER_THROTTLE_INTERVAL":  "5",
				"RESTART_NOTIFIER_QUEUE_CAPACITY":     "16",
			}),
			wantCfg: &config.Config{
				LogLevel:           "info",
				LogFormat:          "text",
				HTTPPort:           "8081",
				MetricsPort:        "9090",
				PingerInterval:     5 * time.Second,
				SlackToken:         "xoxb-test",
				SlackAPIURL:        "https://slack.com/api/",
				NotificationConfig: "*/*/*=alerts",
				ResyncSchedule:     "off",
				QueueCapacity:      16,
				ThrottleThreshold:  0,
				ThrottleInterval:   5,
				LogTailLines:       500,
				LogFetchTimeout:    time.Minute,
				DeliveryInterval:   250 * time.Millisecond,
				DeliveryBurst:      3,
				DeliveryTimeout:    30 * time.Second,
				WatchRetryDelay:    5 * time.Second,
			},
		},
		{
			name: "original env names as fallback",
			giveEnv: map[string]string{
				"SLACK_TOKEN":               "xoxb-fallback",
				"SLACK_NOTIFICATION_CONFIG": "*/*/*=",
				"KUBECONFIG":                "/tmp/kubeconfig",
			},
			wantCfg: &config.Config{
				KubeConfig:         "/tmp/kubeconfig",
				LogLevel:           "info",
				LogFormat:          "json",
				HTTPPort:           "8080",
				MetricsPort:        "9090",
				PingerInterval:     10 * time.Second,
				SlackToken:         "xoxb-fallback",
				SlackAPIURL:        "https://slack.com/api/",
				NotificationConfig: "*/*/*=",
				ResyncSchedule:     "0 */6 * * *",
				QueueCapacity:      320,
				ThrottleThreshold:  10,
				ThrottleInterval:   24,
				LogTailLines:       500,
				LogFetchTimeout:    10 * time.Second,
				DeliveryInterval:   time.Second,
				DeliveryBurst:      3,
				DeliveryTimeout:    30 * time.Second,
				WatchRetryDelay:    5 * time.Second,
			},
		},
		{
			name:    "missing slack token",
			giveEnv: map[string]string{"RESTART_NOTIFIER_SLACK_NOTIFICATION_CONFIG": "*/*/*=alerts"},
			wantErr: config.ErrRequired,
		},
		{
			name: "empty notification config",
			giveEnv: map[string]string{
				"RESTART_NOTIFIER_SLACK_TOKEN":               "xoxb-test",
				"RESTART_NOTIFIER_SLACK_NOTIFICATION_CONFIG": "",
			},
			wantErr: config.ErrRequired,
		},
		{
			name:    "missing notification config",
			giveEnv: map[string]string{"RESTART_NOTIFIER_SLACK_TOKEN": "xoxb-test"},
			wantErr: config.ErrRequired,
		},
		{
			name:    "invalid RESTART_NOTIFIER_PINGER_INTERVAL",
			giveEnv: withEnv(map[string]string{"RESTART_NOTIFIER_PINGER_INTERVAL": "not-a-duration"}),
			wantErr: config.ErrInvalidEnv,
		},
		{
			name:    "RESTART_NOTIFIER_DELIVERY_TIMEOUT below minimum",
			giveEnv: withEnv(map[string]string{"RESTART_NOTIFIER_DELIVERY_TIMEOUT": "10ms"}),
			wantErr: config.ErrInvalidEnv,
		},
		{
			name:    "zero RESTART_NOTIFIER_THROTTLE_INTERVAL",
			giveEnv: withEnv(map[string]string{"RESTART_NOTIFIER_THROTTLE_INTERVAL": "0"}),
			wantErr: config.ErrInvalidEnv,
		},
		{
			name:    "negative RESTART_NOTIFIER_THROTTLE_THRESHOLD",
			giveEnv: withEnv(map[string]string{"RESTART_NOTIFIER_THROTTLE_THRESHOLD": "-1"}),
			wantErr: config.ErrInvalidEnv,
		},
		{
			name:    "invalid RESTART_NOTIFIER_QUEUE_CAPACITY",
			giveEnv: withEnv(map[string]string{"RESTART_NOTIFIER_QUEUE_CAPACITY": "x"}),
			wantErr: config.ErrInvalidEnv,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range envKeys {
				unsetEnv(t, k)
			}

			for k, v := range tt.giveEnv {
				t.Setenv(k, v)
			}

			got, err := config.Load()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantCfg, got)
		})
	}
}
