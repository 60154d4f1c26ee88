package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"

	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

const (
	DefaultWatchRetryDelay = 5 * time.Second

	listPageSize = 500
)

// resyncSchedule yields the next forced relist. A zero time disables it.
type resyncSchedule interface {
	Next(after time.Time) time.Time
}

// EventSource turns a cluster-wide pod list+watch into notifier events:
// Init, InitApply per pod and InitDone for every (re)list, then Apply and
// Delete from the watch. It is owned by the watch loop and not safe for
// concurrent use.
type EventSource struct {
	logger          *slog.Logger
	clientset       kubernetes.Interface
	retryDelay      time.Duration
	schedule        resyncSchedule
	pending         []notifier.Event
	watcher         watch.Interface
	resourceVersion string
	needList        bool
	resyncTimer     *time.Timer
}

// NewEventSource creates a pod event source. schedule may be nil.
func NewEventSource(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	retryDelay time.Duration,
	schedule resyncSchedule,
) *EventSource {
	if retryDelay <= 0 {
		retryDelay = DefaultWatchRetryDelay
	}

	return &EventSource{
		logger:     logger.With("component", "pod-events"),
		clientset:  clientset,
		retryDelay: retryDelay,
		schedule:   schedule,
		needList:   true,
	}
}

var _ notifier.EventSource = (*EventSource)(nil)

// NextEventQuery blocks until the next event, ctx is done or a list/watch
// call fails. Failed calls are retried on the next call after a delay.
func (s *EventSource) NextEventQuery(ctx context.Context) (notifier.Event, error) {
	for {
		if len(s.pending) > 0 {
			event := s.pending[0]
			s.pending[0] = notifier.Event{}
			s.pending = s.pending[1:]

			return event, nil
		}

		if err := ctx.Err(); err != nil {
			s.Stop()

			return notifier.Event{}, err
		}

		if s.needList {
			if err := s.relist(ctx); err != nil {
				return notifier.Event{}, err
			}

			continue
		}

		if s.watcher == nil {
			if err := s.startWatch(ctx); err != nil {
				return notifier.Event{}, err
			}

			continue
		}

		event, ok, err := s.receive(ctx)
		if err != nil {
			return notifier.Event{}, err
		}

		if ok {
			return event, nil
		}
	}
}

// Stop releases the watch and the resync timer.
func (s *EventSource) Stop() {
	s.stopWatch()
	s.stopResync()
}

func (s *EventSource) relist(ctx context.Context) error {
	s.Stop()

	pods, resourceVersion, err := s.listPods(ctx)
	if err != nil {
		return s.failure(ctx, ErrListPods, err)
	}

	events := make([]notifier.Event, 0, len(pods)+2)
	events = append(events, notifier.Event{Type: notifier.EventInit})

	for i := range pods {
		events = append(events, notifier.Event{
			Type: notifier.EventInitApply,
			Pod:  toDomainPod(&pods[i]),
		})
	}

	events = append(events, notifier.Event{Type: notifier.EventInitDone})

	s.pending = events
	s.resourceVersion = resourceVersion
	s.needList = false
	s.startResync()

	s.logger.InfoContext(ctx, "pods listed",
		"count", len(pods),
		"resourceVersion", resourceVersion,
	)

	return nil
}

func (s *EventSource) listPods(ctx context.Context) ([]corev1.Pod, string, error) {
	opts := metav1.ListOptions{Limit: listPageSize}

	var pods []corev1.Pod

	for {
		list, err := s.clientset.CoreV1().Pods("").List(ctx, opts)
		if err != nil {
			return nil, "", err
		}

		pods = append(pods, list.Items...)

		if list.Continue == "" {
			return pods, list.ResourceVersion, nil
		}

		opts.Continue = list.Continue
	}
}

func (s *EventSource) startWatch(ctx context.Context) error {
	watcher, err := s.clientset.CoreV1().Pods("").Watch(ctx, metav1.ListOptions{
		ResourceVersion:     s.resourceVersion,
		AllowWatchBookmarks: true,
	})
	if err != nil {
		if isExpired(err) {
			s.logger.InfoContext(ctx, "resource version expired, relisting",
				"resourceVersion", s.resourceVersion,
			)

			s.needList = true

			return nil
		}

		return s.failure(ctx, ErrWatchPods, err)
	}

	s.watcher = watcher

	s.logger.DebugContext(ctx, "watch started", "resourceVersion", s.resourceVersion)

	return nil
}

// receive waits for one watch event. ok is false when the event changed only
// the source state.
func (s *EventSource) receive(ctx context.Context) (notifier.Event, bool, error) {
	var resyncC <-chan time.Time
	if s.resyncTimer != nil {
		resyncC = s.resyncTimer.C
	}

	select {
	case <-ctx.Done():
		s.Stop()

		return notifier.Event{}, false, ctx.Err()
	case <-resyncC:
		s.resyncTimer = nil
		s.needList = true

		s.logger.InfoContext(ctx, "scheduled resync")

		return notifier.Event{}, false, nil
	case event, ok := <-s.watcher.ResultChan():
		if !ok {
			s.stopWatch()
			s.logger.DebugContext(ctx, "watch closed, resuming", "resourceVersion", s.resourceVersion)

			return notifier.Event{}, false, nil
		}

		return s.handleWatchEvent(ctx, event)
	}
}

func (s *EventSource) handleWatchEvent(ctx context.Context, event watch.Event) (notifier.Event, bool, error) {
	switch event.Type {
	case watch.Added, watch.Modified, watch.Deleted:
		pod, ok := event.Object.(*corev1.Pod)
		if !ok {
			return notifier.Event{}, false, fmt.Errorf("%w: %s %T", ErrUnexpectedObject, event.Type, event.Object)
		}

		s.resourceVersion = pod.ResourceVersion

		eventType := notifier.EventApply
		if event.Type == watch.Deleted {
			eventType = notifier.EventDelete
		}

		return notifier.Event{Type: eventType, Pod: toDomainPod(pod)}, true, nil
	case watch.Bookmark:
		obj, err := meta.Accessor(event.Object)
		if err == nil {
			s.resourceVersion = obj.GetResourceVersion()
		}

		return notifier.Event{}, false, nil
	case watch.Error:
		s.stopWatch()

		err := apierrors.FromObject(event.Object)
		if isExpired(err) {
			s.logger.InfoContext(ctx, "watch expired, relisting", "resourceVersion", s.resourceVersion)

			s.needList = true

			return notifier.Event{}, false, nil
		}

		return notifier.Event{}, false, s.failure(ctx, ErrWatchPods, err)
	default:
		return notifier.Event{}, false, nil
	}
}

// failure waits the retry delay and wraps err. Rejected credentials are
// returned as unrecoverable without waiting.
func (s *EventSource) failure(ctx context.Context, kind, err error) error {
	if apierrors.IsUnauthorized(err) {
		return &UnrecoverableError{Err: fmt.Errorf("%w: %w", kind, err)}
	}

	timer := time.NewTimer(s.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}

	return fmt.Errorf("%w: %w", kind, err)
}

func (s *EventSource) startResync() {
	if s.schedule == nil {
		return
	}

	now := time.Now()

	next := s.schedule.Next(now)
	if next.IsZero() {
		return
	}

	s.resyncTimer = time.NewTimer(next.Sub(now))
}

func (s *EventSource) stopResync() {
	if s.resyncTimer != nil {
		s.resyncTimer.Stop()
		s.resyncTimer = nil
	}
}

func (s *EventSource) stopWatch() {
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
}

func isExpired(err error) bool {
	return apierrors.IsResourceExpired(err) || apierrors.IsGone(err)
}
