package k8s

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

func TestToDomainPod(t *testing.T) {
	t.Parallel()

	started := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{UID: "uid-1", Name: "pod-a", Namespace: "ns1"},
		Spec: corev1.PodSpec{
			NodeName: "node-a",
			Containers: []corev1.Container{
				{
					Name: "app",
					Resources: corev1.ResourceRequirements{
						Limits: corev1.ResourceList{
							corev1.ResourceMemory:           resource.MustParse("512Mi"),
							corev1.ResourceCPU:              resource.MustParse("500m"),
							corev1.ResourceEphemeralStorage: resource.MustParse("1Gi"),
						},
						Requests: corev1.ResourceList{
							corev1.ResourceMemory: resource.MustParse("256Mi"),
						},
					},
				},
				{Name: "sidecar"},
			},
		},
		Status: corev1.PodStatus{
			ContainerStatuses: []corev1.ContainerStatus{
				{
					Name:         "app",
					Image:        "app:1",
					RestartCount: 3,
					LastTerminationState: corev1.ContainerState{
						Terminated: &corev1.ContainerStateTerminated{
							ExitCode:  137,
							Reason:    "OOMKilled",
							StartedAt: metav1.NewTime(started),
						},
					},
				},
				{
					Name:         "sidecar",
					Image:        "sidecar:1",
					RestartCount: 0,
				},
			},
		},
	}

	got := toDomainPod(pod)

	require.Equal(t, "uid-1", got.UID)
	require.Equal(t, "ns1", got.Namespace)
	require.Equal(t, "pod-a", got.Name)
	require.Equal(t, "node-a", got.NodeName)
	require.Equal(t, notifier.RestartCounts{"app": 3, "sidecar": 0}, got.RestartCounts())

	term := got.ContainerStatuses[0].LastTermination
	require.NotNil(t, term)
	require.Equal(t, int32(137), term.ExitCode)
	require.Equal(t, "OOMKilled", term.Reason)
	require.Equal(t, started, *term.StartedAt)
	require.Nil(t, term.FinishedAt)
	require.Nil(t, got.ContainerStatuses[1].LastTermination)

	resources, ok := got.ContainerResources("app")
	require.True(t, ok)
	require.Equal(t, []notifier.ResourceQuantity{
		{Name: "cpu", Quantity: "500m"},
		{Name: "ephemeral-storage", Quantity: "1Gi"},
		{Name: "memory", Quantity: "512Mi"},
	}, resources.Limits)
	require.Equal(t, []notifier.ResourceQuantity{{Name: "memory", Quantity: "256Mi"}}, resources.Requests)

	resources, ok = got.ContainerResources("sidecar")
	require.True(t, ok)
	require.True(t, resources.IsEmpty())
}
