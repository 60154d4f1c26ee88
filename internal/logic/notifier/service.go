package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/skillcoder/restart-notifier/internal/infra/metrics"
)

// Service is the watch loop. It consumes pod events, keeps the restart
// ledger and enqueues an alert for every notified restart.
type Service struct {
	logger     *slog.Logger
	source     EventSource
	router     Router
	throttle   Throttle
	enricher   *Enricher
	queue      AlertQueue
	ledger     *Ledger
	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
	synced     atomic.Bool
	sourceErrs atomic.Int32
	err        error
}

// New creates a new watch loop service.
func New(
	logger *slog.Logger,
	source EventSource,
	router Router,
	throttle Throttle,
	enricher *Enricher,
	queue AlertQueue,
) *Service {
	return &Service{
		logger:   logger.With("component", "watch-loop"),
		source:   source,
		router:   router,
		throttle: throttle,
		enricher: enricher,
		queue:    queue,
		ledger:   NewLedger(),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Name returns the name of the watch loop component
func (s *Service) Name() string {
	return "watch-loop"
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "watch loop is shutting down, skipping start")

		return nil
	}

	go func() {
		_ = s.Run(ctx)
	}()

	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Done is closed when Run has returned.
func (s *Service) Done() <-chan struct{} {
	return s.doneCh
}

// Err returns the error Run finished with. Valid after Done is closed.
func (s *Service) Err() error {
	select {
	case <-s.doneCh:
		return s.err
	default:
		return nil
	}
}

func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-s.doneCh:
		return fmt.Errorf("watch loop exited")
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
	default:
		return fmt.Errorf("watch loop is not started")
	}

	if !s.synced.Load() {
		return fmt.Errorf("initial pod list is not synced")
	}

	if n := s.sourceErrs.Load(); n >= consecutiveSourceErrorsUnhealthy {
		return fmt.Errorf("event source failed %d times in a row", n)
	}

	return nil
}

// PingerCritical keeps source errors out of the liveness probe; they only
// affect readiness. An exited loop stops the process on its own.
func (s *Service) PingerCritical() bool {
	return false
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "watch loop is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "watch loop shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down watch loop")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before watch loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "watch loop exited")
	}

	return nil
}

// Run consumes events until ctx is done (nil), the source reports an
// unrecoverable error or an event breaks the source contract. The alert
// queue is closed on return. Run must be called once.
func (s *Service) Run(ctx context.Context) (runErr error) {
	defer func() {
		s.queue.Close()
		s.err = runErr
		close(s.doneCh)
	}()

	close(s.ready)

	for {
		event, err := s.source.NextEventQuery(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.InfoContext(ctx, "terminating watch loop")

				return nil
			}

			var target unrecoverable
			if errors.As(err, &target) {
				s.logger.ErrorContext(ctx, "event source failed", "reason", err)

				return fmt.Errorf("event source: %w", err)
			}

			metrics.RecordEventSourceError()

			n := s.sourceErrs.Add(1)
			s.logger.WarnContext(ctx, "event source error", "reason", err, "consecutive", n)

			continue
		}

		s.sourceErrs.Store(0)

		err = s.HandleEventCommand(ctx, event)
		if err != nil {
			if errors.Is(err, ErrInvariantViolation) {
				s.logger.ErrorContext(ctx, "stopping watch loop", "reason", err)

				return err
			}

			if ctx.Err() != nil {
				s.logger.InfoContext(ctx, "terminating watch loop")

				return nil
			}

			s.logger.ErrorContext(ctx, "handle event", "event", event.Type.String(), "reason", err)
		}
	}
}

// HandleEventCommand applies one event to the ledger and enqueues the alerts
// it produces.
func (s *Service) HandleEventCommand(ctx context.Context, event Event) error {
	switch event.Type {
	case EventInit:
		s.ledger.Clear()
		s.logger.DebugContext(ctx, "pod list started, ledger cleared")
	case EventInitApply:
		if err := validatePod(event); err != nil {
			return err
		}

		s.ledger.Seed(event.Pod.UID, event.Pod.RestartCounts())
	case EventInitDone:
		if !s.synced.Swap(true) {
			s.logger.InfoContext(ctx, "initial pod list synced", "pods", s.ledger.Len())
		} else {
			s.logger.DebugContext(ctx, "pod list resynced", "pods", s.ledger.Len())
		}
	case EventApply:
		if err := validatePod(event); err != nil {
			return err
		}

		if err := s.handleApply(ctx, event.Pod); err != nil {
			return err
		}
	case EventDelete:
		if err := validatePod(event); err != nil {
			return err
		}

		tracked := s.ledger.contains(event.Pod.UID)
		s.ledger.Remove(event.Pod.UID)
		s.logger.DebugContext(ctx, "pod deleted",
			"namespace", event.Pod.Namespace,
			"pod", event.Pod.Name,
			"tracked", tracked,
		)
	default:
		return fmt.Errorf("%w: unknown event type %s", ErrInvariantViolation, event.Type)
	}

	metrics.SetTrackedPods(s.ledger.Len())

	return nil
}

func (s *Service) handleApply(ctx context.Context, pod *Pod) error {
	isNew, previous := s.ledger.GetOrInit(pod.UID, pod.RestartCounts())
	if isNew {
		s.logger.DebugContext(ctx, "pod tracked",
			"namespace", pod.Namespace,
			"pod", pod.Name,
		)

		return nil
	}

	for i := range pod.ContainerStatuses {
		status := pod.ContainerStatuses[i]

		logger := s.logger.With(
			"namespace", pod.Namespace,
			"pod", pod.Name,
			"container", status.Name,
		)

		recorded := previous[status.Name]
		if status.RestartCount <= recorded {
			if status.RestartCount < recorded {
				logger.DebugContext(ctx, "restart count went down, ignoring",
					"recorded", recorded,
					"reported", status.RestartCount,
				)
			}

			continue
		}

		s.ledger.Update(pod.UID, status.Name, status.RestartCount)
		metrics.RecordRestartDetected(pod.Namespace)

		logger = logger.With("restartCount", status.RestartCount)

		if s.throttle.ShouldSuppress(status.RestartCount) {
			metrics.RecordNotificationSuppressed(metrics.SuppressedThrottled)
			logger.InfoContext(ctx, "container restarted, notification throttled")

			continue
		}

		channel, ok := s.router.Resolve(pod.Namespace, pod.Name, status.Name)
		if !ok {
			metrics.RecordNotificationSuppressed(metrics.SuppressedNoRoute)
			logger.InfoContext(ctx, "container restarted, no notification channel")

			continue
		}

		alert := s.enricher.Enrich(ctx, pod, status, channel)

		err := s.queue.Push(ctx, alert)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrEnqueueAlert, alert.String(), err)
		}

		metrics.RecordAlertEnqueued(channel)
		metrics.SetAlertQueueLength(s.queue.Len())

		logger.InfoContext(ctx, "container restarted, alert enqueued",
			"alertID", alert.ID,
			"channel", channel,
		)
		logger.DebugContext(ctx, "alert queue occupancy",
			"length", s.queue.Len(),
			"capacity", s.queue.Cap(),
		)
	}

	return nil
}

func validatePod(event Event) error {
	pod := event.Pod
	if pod == nil {
		return fmt.Errorf("%w: %s event without pod", ErrInvariantViolation, event.Type)
	}

	if pod.UID == "" || pod.Namespace == "" || pod.Name == "" {
		return fmt.Errorf(
			"%w: %s event for pod with uid=%q namespace=%q name=%q",
			ErrInvariantViolation,
			event.Type,
			pod.UID,
			pod.Namespace,
			pod.Name,
		)
	}

	return nil
}
