package k8s

import "errors"

var (
	ErrListPods         = errors.New("list pods")
	ErrWatchPods        = errors.New("watch pods")
	ErrUnexpectedObject = errors.New("unexpected watch object")
	ErrFetchLogs        = errors.New("fetch container logs")
	ErrGetUsage         = errors.New("get container usage")
)

// UnrecoverableError is a source failure that retrying cannot fix,
// e.g. rejected credentials.
type UnrecoverableError struct {
	Err error
}

func (e *UnrecoverableError) Error() string {
	return "unrecoverable: " + e.Err.Error()
}

func (e *UnrecoverableError) Unwrap() error {
	return e.Err
}

func (e *UnrecoverableError) IsUnrecoverable() {}

// MetricsNotFoundError represents missing usage metrics; the pod may be too
// young for metrics-server or the container already gone.
type MetricsNotFoundError struct{}

func (e *MetricsNotFoundError) Error() string {
	return "container metrics not found"
}

func (e *MetricsNotFoundError) IsNotFound() {}

var errMetricsNotFound = &MetricsNotFoundError{}
