package k8s

import (
	"slices"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"

	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

func toDomainPod(pod *corev1.Pod) *notifier.Pod {
	out := &notifier.Pod{
		UID:               string(pod.UID),
		Namespace:         pod.Namespace,
		Name:              pod.Name,
		NodeName:          pod.Spec.NodeName,
		ContainerStatuses: make([]notifier.ContainerStatus, 0, len(pod.Status.ContainerStatuses)),
		Containers:        make([]notifier.ContainerSpec, 0, len(pod.Spec.Containers)),
	}

	for i := range pod.Status.ContainerStatuses {
		status := &pod.Status.ContainerStatuses[i]

		out.ContainerStatuses = append(out.ContainerStatuses, notifier.ContainerStatus{
			Name:            status.Name,
			Image:           status.Image,
			RestartCount:    status.RestartCount,
			LastTermination: toDomainTermination(status.LastTerminationState.Terminated),
		})
	}

	for i := range pod.Spec.Containers {
		container := &pod.Spec.Containers[i]

		out.Containers = append(out.Containers, notifier.ContainerSpec{
			Name: container.Name,
			Resources: notifier.ResourceSpec{
				Limits:   toDomainQuantities(container.Resources.Limits),
				Requests: toDomainQuantities(container.Resources.Requests),
			},
		})
	}

	return out
}

func toDomainTermination(term *corev1.ContainerStateTerminated) *notifier.TerminationInfo {
	if term == nil {
		return nil
	}

	return &notifier.TerminationInfo{
		ExitCode:   term.ExitCode,
		Signal:     term.Signal,
		Reason:     term.Reason,
		Message:    term.Message,
		StartedAt:  toTimePtr(term.StartedAt),
		FinishedAt: toTimePtr(term.FinishedAt),
	}
}

func toTimePtr(t metav1.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	out := t.Time

	return &out
}

// toDomainQuantities renders a resource list sorted by resource name.
func toDomainQuantities(list corev1.ResourceList) []notifier.ResourceQuantity {
	if len(list) == 0 {
		return nil
	}

	names := make([]string, 0, len(list))
	for name := range list {
		names = append(names, string(name))
	}

	slices.Sort(names)

	out := make([]notifier.ResourceQuantity, 0, len(names))
	for _, name := range names {
		quantity := list[corev1.ResourceName(name)]

		out = append(out, notifier.ResourceQuantity{
			Name:     name,
			Quantity: quantity.String(),
		})
	}

	return out
}

func toDomainUsage(podMetrics *metricsv1beta1.PodMetrics, container string) (*notifier.ContainerUsage, bool) {
	for i := range podMetrics.Containers {
		if podMetrics.Containers[i].Name != container {
			continue
		}

		usage := &notifier.ContainerUsage{}

		if cpu, ok := podMetrics.Containers[i].Usage[corev1.ResourceCPU]; ok {
			usage.CPU = cpu.String()
		}

		if memory, ok := podMetrics.Containers[i].Usage[corev1.ResourceMemory]; ok {
			usage.Memory = memory.String()
		}

		return usage, true
	}

	return nil, false
}
