package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/skillcoder/restart-notifier/internal/adapters/outbound/k8s"
	"github.com/skillcoder/restart-notifier/internal/adapters/outbound/slack"
	"github.com/skillcoder/restart-notifier/internal/config"
	"github.com/skillcoder/restart-notifier/internal/httpserver"
	"github.com/skillcoder/restart-notifier/internal/infra/cronparser"
	"github.com/skillcoder/restart-notifier/internal/infra/pinger"
	"github.com/skillcoder/restart-notifier/internal/infra/queue"
	"github.com/skillcoder/restart-notifier/internal/infra/shutdown"
	"github.com/skillcoder/restart-notifier/internal/logic/delivery"
	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
	"github.com/skillcoder/restart-notifier/internal/logic/routing"
)

const startupTimeout = 30 * time.Second

type App struct {
	logger     *slog.Logger
	appState   appstater
	signals    signalHandler
	servers    []appServer
	workers    []appServer
	watchLoop  watchLoop
	resyncSpec string
}

// New wires the notifier. It fails on an invalid routing config or
// Kubernetes client config before anything is started.
func New(logger *slog.Logger, cfg *config.Config, appState appstater) (*App, error) {
	router, err := routing.Parse(cfg.NotificationConfig)
	if err != nil {
		return nil, fmt.Errorf("parse notification config: %w", err)
	}

	throttle, err := notifier.NewThrottle(cfg.ThrottleThreshold, cfg.ThrottleInterval)
	if err != nil {
		return nil, fmt.Errorf("throttle: %w", err)
	}

	schedule, err := cronparser.Parse(cfg.ResyncSchedule)
	if err != nil && !errors.Is(err, cronparser.ErrDisabled) {
		return nil, fmt.Errorf("parse resync schedule: %w", err)
	}

	kubeConfig, err := clientcmd.BuildConfigFromFlags(cfg.KubeMaster, cfg.KubeConfig)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	clientset, metricsClientset, err := newClientsets(kubeConfig)
	if err != nil {
		return nil, err
	}

	k8sAdapter := k8s.New(logger, clientset, metricsClientset)
	eventSource := k8s.NewEventSource(logger, clientset, cfg.WatchRetryDelay, schedule)

	alerts := queue.New[notifier.Alert](cfg.QueueCapacity)

	enricher := notifier.NewEnricher(logger, k8sAdapter, k8sAdapter, cfg.LogFetchTimeout, cfg.LogTailLines)
	watchLoopService := notifier.New(logger, eventSource, router, throttle, enricher, alerts)

	slackAdapter := slack.New(logger, cfg.SlackToken, cfg.SlackAPIURL, &http.Client{Timeout: cfg.DeliveryTimeout})
	deliveryService := delivery.New(
		logger,
		alerts,
		slackAdapter,
		cfg.DeliveryInterval,
		cfg.DeliveryBurst,
		cfg.DeliveryTimeout,
	)

	httpServer := httpserver.New(logger, appState, cfg.HTTPPort)
	metricsServer := httpserver.NewMetricsServer(logger, cfg.MetricsPort, nil)

	for _, p := range []pinger.Pinger{httpServer, metricsServer, watchLoopService, deliveryService, slackAdapter} {
		if err := appState.RegisterPinger(p); err != nil {
			return nil, fmt.Errorf("register pinger: %w", err)
		}
	}

	for _, rule := range router.Rules() {
		logger.Info("routing rule loaded", "rule", rule.String())
	}

	return &App{
		logger:     logger.With("component", "app"),
		appState:   appState,
		signals:    shutdown.New(logger, appState),
		servers:    []appServer{metricsServer, httpServer},
		workers:    []appServer{deliveryService, watchLoopService},
		watchLoop:  watchLoopService,
		resyncSpec: cfg.ResyncSchedule,
	}, nil
}

func newClientsets(kubeConfig *rest.Config) (kubernetes.Interface, metricsv.Interface, error) {
	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create clientset: %w", err)
	}

	metricsClientset, err := metricsv.NewForConfig(kubeConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create metrics clientset: %w", err)
	}

	return clientset, metricsClientset, nil
}

// Run starts all components and blocks until a termination signal arrives
// or the watch loop stops. The watch loop error, if any, is returned.
func (a *App) Run(originCtx context.Context) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go a.signals.HandleSignals(ctx, cancel)

	if err := a.appState.SetStarting(ctx); err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	startErr := a.start(ctx)
	if startErr != nil && ctx.Err() != nil {
		a.logger.InfoContext(ctx, "terminated during startup", "reason", startErr)

		startErr = nil
	}

	var runErr error

	if startErr == nil {
		a.logger.InfoContext(ctx, "restart notifier running", "resyncSchedule", a.resyncSpec)

		select {
		case <-ctx.Done():
		case <-a.watchLoop.Done():
			runErr = a.watchLoop.Err()
		}
	}

	cancel()

	shutdownErr := a.appState.Shutdown(originCtx)
	if shutdownErr != nil {
		shutdownErr = fmt.Errorf("shutdown: %w", shutdownErr)
	}

	if runErr != nil {
		runErr = fmt.Errorf("watch loop: %w", runErr)
	}

	return errors.Join(startErr, runErr, shutdownErr)
}

func (a *App) start(ctx context.Context) error {
	if err := a.startAll(ctx, a.servers); err != nil {
		return err
	}

	if err := a.appState.StartPinger(ctx); err != nil {
		return err
	}

	if err := a.startAll(ctx, a.workers); err != nil {
		return err
	}

	if err := a.appState.SetRunning(ctx); err != nil {
		return fmt.Errorf("set running: %w", err)
	}

	return nil
}

// startAll starts the components in order, registers them for shutdown and
// waits until all of them report ready.
func (a *App) startAll(ctx context.Context, components []appServer) error {
	readyChans := make([]<-chan struct{}, 0, len(components))

	for _, component := range components {
		if err := a.appState.RegisterShutdowner(component); err != nil {
			return fmt.Errorf("register shutdowner %s: %w", component.Name(), err)
		}

		if err := component.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", component.Name(), err)
		}

		readyChans = append(readyChans, component.Ready())
	}

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	select {
	case <-allChannelsClose(startCtx, a.logger, readyChans...):
	case <-startCtx.Done():
		return fmt.Errorf("wait components ready: %w", startCtx.Err())
	}

	return nil
}

// allChannelsClose returns a channel closed once every input channel is
// closed. On ctx done it stops waiting and closes the output as well.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	var wg sync.WaitGroup

	for i, ch := range chans {
		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case <-ch:
			case <-ctx.Done():
				logger.DebugContext(ctx, "stopped waiting for channel", "index", i)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
