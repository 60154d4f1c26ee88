package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/skillcoder/restart-notifier/internal/infra/metrics"
	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

const (
	DefaultInterval = time.Second
	DefaultBurst    = 3
	DefaultTimeout  = 30 * time.Second
)

// Service pops alerts from the queue and hands them to the messenger, one at
// a time, paced by a token bucket. Failed alerts are logged and dropped.
type Service struct {
	logger     *slog.Logger
	queue      AlertQueue
	messenger  Messenger
	limiter    *rate.Limiter
	timeout    time.Duration
	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
	delivered  atomic.Int64
	failed     atomic.Int64
}

// New creates a new delivery service. interval is the minimum spacing of
// deliveries once burst is used up.
func New(
	logger *slog.Logger,
	queue AlertQueue,
	messenger Messenger,
	interval time.Duration,
	burst int,
	timeout time.Duration,
) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if burst < 1 {
		burst = 1
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		logger:    logger.With("component", "delivery"),
		queue:     queue,
		messenger: messenger,
		limiter:   rate.NewLimiter(rate.Every(interval), burst),
		timeout:   timeout,
		ready:     make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Name returns the name of the delivery component
func (s *Service) Name() string {
	return "delivery"
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "delivery service is shutting down, skipping start")

		return nil
	}

	go s.Run(ctx)

	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-s.doneCh:
		return fmt.Errorf("delivery loop exited")
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
	default:
		return fmt.Errorf("delivery service is not ready")
	}

	if s.queue.Len() >= s.queue.Cap() {
		return fmt.Errorf("alert queue is full: %d", s.queue.Len())
	}

	return nil
}

// PingerReadyCritical reports that a full queue must not affect readiness.
func (s *Service) PingerReadyCritical() bool {
	return false
}

// PingerCritical keeps a full queue out of the liveness probe. A full queue
// only slows the watch loop down.
func (s *Service) PingerCritical() bool {
	return false
}

// Shutdown waits for the loop to exit. The loop stops once the queue is
// closed and empty or its context is done; alerts still queued at that point
// are dropped.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "delivery service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "delivery service shut downed",
			"delivered", s.delivered.Load(),
			"failed", s.failed.Load(),
		)
	}()

	s.logger.InfoContext(ctx, "shutting down delivery service", "pending", s.queue.Len())

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before delivery loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "delivery loop exited")
	}

	return nil
}

// Run delivers alerts until the queue is closed and drained or ctx is done.
func (s *Service) Run(ctx context.Context) {
	defer close(s.doneCh)

	close(s.ready)

	for {
		alert, ok := s.queue.Pop(ctx)
		if !ok {
			s.logger.InfoContext(ctx, "terminating delivery loop")

			return
		}

		metrics.SetAlertQueueLength(s.queue.Len())

		err := s.limiter.Wait(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "delivery loop stopped while waiting for rate limiter",
				"alertID", alert.ID,
				"reason", err,
			)

			return
		}

		err = s.DeliverCommand(ctx, alert)
		if err != nil {
			s.logger.ErrorContext(ctx, "alert dropped",
				"alertID", alert.ID,
				"reason", err,
			)
		}
	}
}

// DeliverCommand sends one alert under the per-alert timeout.
func (s *Service) DeliverCommand(ctx context.Context, alert notifier.Alert) error {
	logger := s.logger.With(
		"alertID", alert.ID,
		"namespace", alert.Namespace,
		"pod", alert.PodName,
		"container", alert.ContainerName,
		"channel", alert.Channel,
	)

	deliverCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	err := s.messenger.DeliverCommand(deliverCtx, alert)
	if err != nil {
		s.failed.Add(1)
		metrics.RecordDelivery(metrics.DeliveryFailure)

		return fmt.Errorf("%w: %s: %w", ErrDeliver, alert.String(), err)
	}

	s.delivered.Add(1)
	metrics.RecordDelivery(metrics.DeliverySuccess)

	logger.InfoContext(ctx, "alert delivered", "latency", time.Since(start))

	return nil
}
