package k8s

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

// maxLogBytes bounds a single log fetch in memory.
const maxLogBytes = 8 << 20

// Adapter fetches container logs and usage from the Kubernetes API.
type Adapter struct {
	logger           *slog.Logger
	clientset        kubernetes.Interface
	metricsClientset metricsv.Interface
}

// New creates a new K8s adapter.
func New(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	metricsClientset metricsv.Interface,
) *Adapter {
	return &Adapter{
		logger:           logger.With("component", "k8s"),
		clientset:        clientset,
		metricsClientset: metricsClientset,
	}
}

var (
	_ notifier.LogFetcher   = (*Adapter)(nil)
	_ notifier.UsageFetcher = (*Adapter)(nil)
)

func (a *Adapter) FetchLogsQuery(
	ctx context.Context,
	namespace,
	pod,
	container string,
	opts notifier.LogOptions,
) (string, error) {
	logOpts := &corev1.PodLogOptions{
		Container: container,
		Previous:  opts.Previous,
	}

	if opts.TailLines > 0 {
		tailLines := opts.TailLines
		logOpts.TailLines = &tailLines
	}

	stream, err := a.clientset.CoreV1().Pods(namespace).GetLogs(pod, logOpts).Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchLogs, err)
	}
	defer func() { _ = stream.Close() }()

	data, err := io.ReadAll(io.LimitReader(stream, maxLogBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read: %w", ErrFetchLogs, err)
	}

	a.logger.DebugContext(ctx, "fetched container logs",
		"namespace", namespace,
		"pod", pod,
		"container", container,
		"bytes", len(data),
	)

	return string(data), nil
}

func (a *Adapter) GetContainerUsageQuery(
	ctx context.Context,
	namespace,
	pod,
	container string,
) (*notifier.ContainerUsage, error) {
	podMetrics, err := a.metricsClientset.MetricsV1beta1().PodMetricses(namespace).Get(
		ctx,
		pod,
		metav1.GetOptions{},
	)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", ErrGetUsage, errMetricsNotFound)
		}

		return nil, fmt.Errorf("%w: %w", ErrGetUsage, err)
	}

	usage, ok := toDomainUsage(podMetrics, container)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrGetUsage, errMetricsNotFound)
	}

	return usage, nil
}
