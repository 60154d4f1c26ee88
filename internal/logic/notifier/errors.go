package notifier

import "errors"

var (
	// ErrInvariantViolation means the event source broke its contract,
	// e.g. a pod without UID, namespace or name.
	ErrInvariantViolation = errors.New("event source invariant violation")
	ErrEnqueueAlert       = errors.New("enqueue alert")
)
