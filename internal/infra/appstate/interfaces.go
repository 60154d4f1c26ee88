package appstate

import (
	"context"
	"time"

	"github.com/skillcoder/restart-notifier/internal/infra/pinger"
	"github.com/skillcoder/restart-notifier/internal/infra/shutdown"
)

type pingerStatusGetter interface {
	GetAllStatus() map[string]pinger.Status
}

// pingerServer is an internal interface for pinger management
type pingerServer interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
	Register(pinger pinger.Pinger) error
	IsReady() bool
	IsHealthy() bool
	pingerStatusGetter
}

// healthChecker is an internal interface for health checking
type healthChecker interface {
	IsHealthy() bool
}

// readyChecker is an internal interface for readiness checking
type readyChecker interface {
	IsReady() bool
}

// statusGetter is an internal interface for getting the application status
type statusGetter interface {
	pingerStatusGetter
	GetState() State
	GetUptime() time.Duration
	GetStartTime() time.Time
}
