package app_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/restart-notifier/internal/app"
	"github.com/skillcoder/restart-notifier/internal/config"
	"github.com/skillcoder/restart-notifier/internal/infra/appstate"
	"github.com/skillcoder/restart-notifier/internal/infra/pinger"
	"github.com/skillcoder/restart-notifier/internal/logic/routing"
)

func newConfig(apiURL string) *config.Config {
	return &config.Config{
		KubeMaster:         apiURL,
		LogLevel:           "info",
		LogFormat:          "json",
		HTTPPort:           "0",
		MetricsPort:        "0",
		PingerInterval:     time.Second,
		SlackToken:         "xoxb-test",
		SlackAPIURL:        apiURL + "/api/",
		NotificationConfig: "*/*/*=alerts",
		ResyncSchedule:     "off",
		QueueCapacity:      8,
		ThrottleThreshold:  10,
		ThrottleInterval:   24,
		LogTailLines:       500,
		LogFetchTimeout:    time.Second,
		DeliveryInterval:   10 * time.Millisecond,
		DeliveryBurst:      1,
		DeliveryTimeout:    time.Second,
		WatchRetryDelay:    50 * time.Millisecond,
	}
}

func newAppState() *appstate.AppState {
	logger := slog.Default()

	return appstate.New(logger, time.Now(), "", make(chan os.Signal, 1), pinger.New(logger, time.Second))
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveModify func(cfg *config.Config)
		wantErr    error
	}{
		{
			name:       "malformed routing rule",
			giveModify: func(cfg *config.Config) { cfg.NotificationConfig = "foo/bar=qux" },
			wantErr:    routing.ErrInvalidRule,
		},
		{
			name:       "malformed resync schedule",
			giveModify: func(cfg *config.Config) { cfg.ResyncSchedule = "every day" },
		},
		{
			name:       "zero throttle interval",
			giveModify: func(cfg *config.Config) { cfg.ThrottleInterval = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig("http://127.0.0.1:1")
			tt.giveModify(cfg)

			_, err := app.New(slog.Default(), cfg, newAppState())
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	t.Run("context cancel shuts down cleanly", func(t *testing.T) {
		t.Parallel()

		appState := newAppState()

		application, err := app.New(slog.Default(), newConfig("http://127.0.0.1:1"), appState)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(t.Context(), 500*time.Millisecond)
		defer cancel()

		require.NoError(t, application.Run(ctx))
		require.Equal(t, appstate.StateTerminated, appState.GetState())
	})

	t.Run("rejected credentials stop the app", func(t *testing.T) {
		t.Parallel()

		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(apiServer.Close)

		appState := newAppState()

		application, err := app.New(slog.Default(), newConfig(apiServer.URL), appState)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
		defer cancel()

		err = application.Run(ctx)
		require.ErrorContains(t, err, "watch loop")
		require.NoError(t, ctx.Err(), "returned before the deadline")
		require.Equal(t, appstate.StateTerminated, appState.GetState())
	})
}
