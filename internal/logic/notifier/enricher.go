package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skillcoder/restart-notifier/internal/infra/metrics"
)

// Enricher turns a detected restart into an Alert.
type Enricher struct {
	logger    *slog.Logger
	logs      LogFetcher
	usage     UsageFetcher
	timeout   time.Duration
	tailLines int64
	newID     func() string
	now       func() time.Time
}

// NewEnricher creates an enricher. usage may be nil, then alerts carry no usage.
func NewEnricher(
	logger *slog.Logger,
	logs LogFetcher,
	usage UsageFetcher,
	timeout time.Duration,
	tailLines int64,
) *Enricher {
	if timeout <= 0 {
		timeout = DefaultLogFetchTimeout
	}

	if tailLines <= 0 {
		tailLines = DefaultLogTailLines
	}

	return &Enricher{
		logger:    logger.With("component", "enricher"),
		logs:      logs,
		usage:     usage,
		timeout:   timeout,
		tailLines: tailLines,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Enrich builds the alert for one restarted container of pod. It performs
// exactly one log fetch and never fails: fetch problems are recorded in
// Alert.Logs.
func (e *Enricher) Enrich(
	ctx context.Context,
	pod *Pod,
	status ContainerStatus,
	channel string,
) Alert {
	alert := Alert{
		ID:            e.newID(),
		Namespace:     pod.Namespace,
		PodName:       pod.Name,
		ContainerName: status.Name,
		Image:         status.Image,
		NodeName:      pod.NodeName,
		RestartCount:  status.RestartCount,
		Channel:       channel,
		DetectedAt:    e.now(),
	}

	if status.LastTermination != nil {
		term := *status.LastTermination
		alert.LastTermination = &term
	}

	if resources, ok := pod.ContainerResources(status.Name); ok {
		alert.Resources = resources
	}

	logger := e.logger.With(
		"alertID", alert.ID,
		"namespace", alert.Namespace,
		"pod", alert.PodName,
		"container", alert.ContainerName,
	)

	alert.Logs = e.fetchLogs(ctx, logger, &alert)
	alert.Usage = e.fetchUsage(ctx, logger, &alert)

	return alert
}

func (e *Enricher) fetchLogs(ctx context.Context, logger *slog.Logger, alert *Alert) LogResult {
	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.logs.FetchLogsQuery(
		fetchCtx,
		alert.Namespace,
		alert.PodName,
		alert.ContainerName,
		LogOptions{
			Previous:  true,
			TailLines: e.tailLines,
		},
	)
	if err != nil {
		metrics.RecordLogFetchFailure()

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			logger.WarnContext(ctx, "log fetch timed out", "timeout", e.timeout)

			return LogFailure(logFetchTimeoutReason)
		}

		logger.WarnContext(ctx, "log fetch failed", "reason", err)

		return LogFailure(err.Error())
	}

	return LogSuccess(text)
}

func (e *Enricher) fetchUsage(ctx context.Context, logger *slog.Logger, alert *Alert) *ContainerUsage {
	if e.usage == nil {
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	usage, err := e.usage.GetContainerUsageQuery(fetchCtx, alert.Namespace, alert.PodName, alert.ContainerName)
	if err != nil {
		var target notFound
		if errors.As(err, &target) {
			logger.DebugContext(ctx, "container usage not found")

			return nil
		}

		logger.WarnContext(ctx, "container usage unavailable", "reason", err)

		return nil
	}

	return usage
}
