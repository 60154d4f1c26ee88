package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultHTTPPort          = "8080"
	defaultMetricsPort       = "9090"
	defaultSlackAPIURL       = "https://slack.com/api/"
	defaultResyncSchedule    = "0 */6 * * *"
	defaultQueueCapacity     = 320
	defaultThrottleThreshold = 10
	defaultThrottleInterval  = 24
	defaultLogTailLines      = 500
	defaultDeliveryBurst     = 3
	defaultPingerInterval    = 10 * time.Second
	defaultLogFetchTimeout   = 10 * time.Second
	defaultDeliveryInterval  = time.Second
	defaultDeliveryTimeout   = 30 * time.Second
	defaultWatchRetryDelay   = 5 * time.Second
)

var (
	ErrRequired   = errors.New("required env is not set")
	ErrInvalidEnv = errors.New("invalid env value")
)

type Config struct {
	KubeConfig         string
	KubeMaster         string
	LogLevel           string
	LogFormat          string
	HTTPPort           string
	MetricsPort        string
	PingerInterval     time.Duration
	SlackToken         string
	SlackAPIURL        string
	NotificationConfig string
	ResyncSchedule     string
	QueueCapacity      int
	ThrottleThreshold  int32
	ThrottleInterval   int32
	LogTailLines       int64
	LogFetchTimeout    time.Duration
	DeliveryInterval   time.Duration
	DeliveryBurst      int
	DeliveryTimeout    time.Duration
	WatchRetryDelay    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig:     getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:     getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		LogLevel:       getEnvOrDefault(envKeyLogLevel, defaultLogLevel),
		LogFormat:      getEnvOrDefault(envKeyLogFormat, defaultLogFormat),
		HTTPPort:       getEnvOrDefault(envKeyHTTPPort, defaultHTTPPort),
		MetricsPort:    getEnvOrDefault(envKeyMetricsPort, defaultMetricsPort),
		SlackAPIURL:    getEnvOrDefault(envKeySlackAPIURL, defaultSlackAPIURL),
		ResyncSchedule: getEnvOrDefault(envKeyResyncSchedule, defaultResyncSchedule),
	}

	cfg.SlackToken = getEnvWithFallback(envKeySlackToken, envKeySlackTokenFallback)
	if cfg.SlackToken == "" {
		return nil, fmt.Errorf("%w: %s", ErrRequired, envKeySlackToken)
	}

	cfg.NotificationConfig = getEnvWithFallback(envKeyNotificationConfig, envKeyNotificationConfigFallback)
	if cfg.NotificationConfig == "" {
		return nil, fmt.Errorf("%w: %s", ErrRequired, envKeyNotificationConfig)
	}

	if err := loadDurations(cfg); err != nil {
		return nil, err
	}

	if err := loadCounts(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadDurations(cfg *Config) error {
	var err error

	cfg.PingerInterval, err = parseDuration(envKeyPingerInterval, defaultPingerInterval, envMinPingerInterval)
	if err != nil {
		return err
	}

	cfg.LogFetchTimeout, err = parseDuration(envKeyLogFetchTimeout, defaultLogFetchTimeout, envMinLogFetchTimeout)
	if err != nil {
		return err
	}

	cfg.DeliveryInterval, err = parseDuration(envKeyDeliveryInterval, defaultDeliveryInterval, envMinDeliveryInterval)
	if err != nil {
		return err
	}

	cfg.DeliveryTimeout, err = parseDuration(envKeyDeliveryTimeout, defaultDeliveryTimeout, envMinDeliveryTimeout)
	if err != nil {
		return err
	}

	cfg.WatchRetryDelay, err = parseDuration(envKeyWatchRetryDelay, defaultWatchRetryDelay, envMinWatchRetryDelay)
	if err != nil {
		return err
	}

	return nil
}

func loadCounts(cfg *Config) error {
	queueCapacity, err := parseInt(envKeyQueueCapacity, defaultQueueCapacity, envMinQueueCapacity, 32)
	if err != nil {
		return err
	}

	throttleThreshold, err := parseInt(envKeyThrottleThreshold, defaultThrottleThreshold, 0, 32)
	if err != nil {
		return err
	}

	throttleInterval, err := parseInt(envKeyThrottleInterval, defaultThrottleInterval, envMinThrottleInterval, 32)
	if err != nil {
		return err
	}

	logTailLines, err := parseInt(envKeyLogTailLines, defaultLogTailLines, envMinLogTailLines, 64)
	if err != nil {
		return err
	}

	deliveryBurst, err := parseInt(envKeyDeliveryBurst, defaultDeliveryBurst, envMinDeliveryBurst, 32)
	if err != nil {
		return err
	}

	cfg.QueueCapacity = int(queueCapacity)
	cfg.ThrottleThreshold = int32(throttleThreshold)
	cfg.ThrottleInterval = int32(throttleInterval)
	cfg.LogTailLines = logTailLines
	cfg.DeliveryBurst = int(deliveryBurst)

	return nil
}

// parseDuration reads key as a Go duration (e.g. 30s, 5m).
func parseDuration(key string, defaultValue, minValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %w", ErrInvalidEnv, key, err)
	}

	if d < minValue {
		return 0, fmt.Errorf("%w: %s must be at least %s, got %s", ErrInvalidEnv, key, minValue, d)
	}

	return d, nil
}

func parseInt(key string, defaultValue, minValue int64, bitSize int) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.ParseInt(value, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %w", ErrInvalidEnv, key, err)
	}

	if n < minValue {
		return 0, fmt.Errorf("%w: %s must be at least %d, got %d", ErrInvalidEnv, key, minValue, n)
	}

	return n, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvWithFallback(key, fallbackKey string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return os.Getenv(fallbackKey)
}

// NotificationConfigFromEnv returns the routing rules env without loading the
// rest of the configuration.
func NotificationConfigFromEnv() string {
	return getEnvWithFallback(envKeyNotificationConfig, envKeyNotificationConfigFallback)
}
