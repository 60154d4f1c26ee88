package notifier

import (
	"fmt"
	"time"
)

// EventType is the kind of a pod lifecycle event.
type EventType int

const (
	// EventInit starts a (re)list of the cluster. The ledger is reset.
	EventInit EventType = iota
	// EventInitApply reports a pod that is alive at (re)list time.
	EventInitApply
	// EventInitDone ends the (re)list.
	EventInitDone
	// EventApply reports a created or modified pod.
	EventApply
	// EventDelete reports a pod that is gone.
	EventDelete
)

func (t EventType) String() string {
	switch t {
	case EventInit:
		return "Init"
	case EventInitApply:
		return "InitApply"
	case EventInitDone:
		return "InitDone"
	case EventApply:
		return "Apply"
	case EventDelete:
		return "Delete"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is one item of the pod event stream. Pod is nil for EventInit and EventInitDone.
type Event struct {
	Type EventType
	Pod  *Pod
}

// Pod is a snapshot of a pod in the domain layer.
type Pod struct {
	UID               string
	Namespace         string
	Name              string
	NodeName          string
	ContainerStatuses []ContainerStatus
	Containers        []ContainerSpec
}

// RestartCounts collects the current restart count of every container status.
func (p *Pod) RestartCounts() RestartCounts {
	counts := make(RestartCounts, len(p.ContainerStatuses))
	for i := range p.ContainerStatuses {
		counts[p.ContainerStatuses[i].Name] = p.ContainerStatuses[i].RestartCount
	}

	return counts
}

// ContainerResources returns the declared resources of the named container.
func (p *Pod) ContainerResources(name string) (ResourceSpec, bool) {
	for i := range p.Containers {
		if p.Containers[i].Name == name {
			return p.Containers[i].Resources, true
		}
	}

	return ResourceSpec{}, false
}

// ContainerStatus is the observed status of one container.
type ContainerStatus struct {
	Name         string
	Image        string
	RestartCount int32
	// LastTermination is set only when the last recorded state was a termination.
	LastTermination *TerminationInfo
}

// TerminationInfo describes how the previous container instance ended.
// Empty strings and nil times mean the platform did not report the value.
type TerminationInfo struct {
	ExitCode   int32
	Signal     int32
	Reason     string
	Message    string
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// ContainerSpec is the declared part of a container we care about.
type ContainerSpec struct {
	Name      string
	Resources ResourceSpec
}

// ResourceQuantity is one resource name with its rendered quantity, e.g. memory=512Mi.
type ResourceQuantity struct {
	Name     string
	Quantity string
}

// ResourceSpec holds declared limits and requests.
type ResourceSpec struct {
	Limits   []ResourceQuantity
	Requests []ResourceQuantity
}

func (r ResourceSpec) IsEmpty() bool {
	return len(r.Limits) == 0 && len(r.Requests) == 0
}

// ContainerUsage is the current usage reported by metrics-server.
type ContainerUsage struct {
	CPU    string
	Memory string
}

// LogOptions selects which logs the log fetcher returns.
type LogOptions struct {
	Previous  bool
	TailLines int64
}

// LogResult is either the fetched log text or the reason the fetch failed.
type LogResult struct {
	Text    string
	Failure string
	failed  bool
}

func LogSuccess(text string) LogResult {
	return LogResult{Text: text}
}

func LogFailure(reason string) LogResult {
	return LogResult{Failure: reason, failed: true}
}

func (l LogResult) Failed() bool {
	return l.failed
}

// Alert is the enriched description of one notified restart. It is built by
// the watch loop and consumed once by the delivery loop.
type Alert struct {
	ID              string
	Namespace       string
	PodName         string
	ContainerName   string
	Image           string
	NodeName        string
	RestartCount    int32
	LastTermination *TerminationInfo
	Resources       ResourceSpec
	Usage           *ContainerUsage
	Logs            LogResult
	Channel         string
	DetectedAt      time.Time
}

// String renders namespace/pod - container.
func (a *Alert) String() string {
	return fmt.Sprintf("%s/%s - %s", a.Namespace, a.PodName, a.ContainerName)
}
