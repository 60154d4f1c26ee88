package notifier

import "context"

// EventSource is the port for the pod event stream.
// Implementations are provided by adapters in the outbound layer.
type EventSource interface {
	// NextEventQuery blocks until the next event. Errors are transient unless
	// they implement unrecoverable.
	NextEventQuery(ctx context.Context) (Event, error)
}

// LogFetcher is the port for container log retrieval.
type LogFetcher interface {
	FetchLogsQuery(
		ctx context.Context,
		namespace,
		pod,
		container string,
		opts LogOptions,
	) (string, error)
}

// UsageFetcher is the port for current container resource usage.
type UsageFetcher interface {
	GetContainerUsageQuery(
		ctx context.Context,
		namespace,
		pod,
		container string,
	) (*ContainerUsage, error)
}

// Router resolves the destination channel for a container.
type Router interface {
	Resolve(namespace, pod, container string) (string, bool)
}

// AlertQueue is the producer side of the bounded delivery queue.
type AlertQueue interface {
	Push(ctx context.Context, alert Alert) error
	Close()
	Len() int
	Cap() int
}

// unrecoverable is a private interface for errors that must stop the watch
// loop, without importing the adapter package.
type unrecoverable interface {
	IsUnrecoverable()
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}
