package notifier

import (
	"errors"
	"fmt"
)

var errThrottleInterval = errors.New("throttle interval must be positive")

// Throttle decides which restarts of a flapping container are notified.
// Restarts 1..Threshold are always notified, afterwards only every Interval-th
// one: Threshold+Interval, Threshold+2*Interval, ...
type Throttle struct {
	Threshold int32
	Interval  int32
}

// DefaultThrottle notifies restarts 1..10, 34, 58, 82, ...
func DefaultThrottle() Throttle {
	return Throttle{
		Threshold: DefaultThrottleThreshold,
		Interval:  DefaultThrottleInterval,
	}
}

// NewThrottle validates the parameters.
func NewThrottle(threshold, interval int32) (Throttle, error) {
	if interval <= 0 {
		return Throttle{}, fmt.Errorf("%w: %d", errThrottleInterval, interval)
	}

	if threshold < 0 {
		return Throttle{}, fmt.Errorf("throttle threshold must not be negative: %d", threshold)
	}

	return Throttle{Threshold: threshold, Interval: interval}, nil
}

// ShouldSuppress reports whether the restart with the given post-update count
// must not be notified.
func (t Throttle) ShouldSuppress(restartCount int32) bool {
	if restartCount <= t.Threshold {
		return false
	}

	return (restartCount-t.Threshold)%t.Interval != 0
}
