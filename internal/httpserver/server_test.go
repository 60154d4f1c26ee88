package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/restart-notifier/internal/httpserver"
	"github.com/skillcoder/restart-notifier/internal/infra/appstate"
	"github.com/skillcoder/restart-notifier/internal/infra/pinger"
)

func newRunningAppState(t *testing.T) *appstate.AppState {
	t.Helper()

	logger := slog.Default()
	pingerSvc := pinger.New(logger, time.Hour)
	appState := appstate.New(logger, time.Now(), "", make(chan os.Signal, 1), pingerSvc)

	require.NoError(t, appState.SetStarting(t.Context()))
	require.NoError(t, appState.StartPinger(t.Context()))
	require.NoError(t, appState.SetRunning(t.Context()))

	t.Cleanup(func() {
		require.NoError(t, pingerSvc.Shutdown(context.Background()))
	})

	return appState
}

// localURL points at the loopback interface on the port the server bound.
func localURL(t *testing.T, addr, path string) string {
	t.Helper()

	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	return "http://" + net.JoinHostPort("127.0.0.1", port) + path
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))

	return rec
}

func TestServer_Handler(t *testing.T) {
	t.Parallel()

	t.Run("running app", func(t *testing.T) {
		t.Parallel()

		handler := httpserver.New(slog.Default(), newRunningAppState(t), "").Handler()

		require.Equal(t, http.StatusOK, get(t, handler, "/-/healthz").Code)
		require.Equal(t, http.StatusOK, get(t, handler, "/-/readyz").Code)

		rec := get(t, handler, "/-/status")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, string(appstate.StateRunning), body["state"])

		require.Equal(t, http.StatusNotFound, get(t, handler, "/metrics").Code)
	})

	t.Run("app not started", func(t *testing.T) {
		t.Parallel()

		logger := slog.Default()
		appState := appstate.New(logger, time.Now(), "", make(chan os.Signal, 1), pinger.New(logger, time.Hour))
		handler := httpserver.New(logger, appState, "").Handler()

		require.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/-/healthz").Code)
		require.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/-/readyz").Code)
	})
}

func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(slog.Default(), newRunningAppState(t), "0")
	require.Equal(t, "http-server", srv.Name())
	require.ErrorIs(t, srv.Ping(t.Context()), httpserver.ErrNotReady)
	require.Empty(t, srv.Addr())

	require.NoError(t, srv.Start(t.Context()))

	select {
	case <-srv.Ready():
	case <-time.After(time.Second):
		t.Fatal("server did not become ready")
	}

	require.NoError(t, srv.Ping(t.Context()))

	resp, err := http.Get(localURL(t, srv.Addr(), "/-/readyz"))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(shutdownCtx))
	require.NoError(t, srv.Shutdown(shutdownCtx), "second shutdown is a no-op")
}

func TestMetricsServer(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_events_total",
		Help: "Test counter.",
	})
	registry.MustRegister(counter)
	counter.Add(3)

	srv := httpserver.NewMetricsServer(slog.Default(), "0", registry)
	require.Equal(t, "metrics-server", srv.Name())
	require.False(t, srv.PingerReadyCritical())
	require.Error(t, srv.Ping(t.Context()))

	require.NoError(t, srv.Start(t.Context()))
	<-srv.Ready()
	require.NoError(t, srv.Ping(t.Context()))

	resp, err := http.Get(localURL(t, srv.Addr(), "/metrics"))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "test_events_total 3")

	require.NoError(t, srv.Shutdown(context.Background()))
}
