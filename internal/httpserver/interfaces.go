package httpserver

import (
	"time"

	"github.com/skillcoder/restart-notifier/internal/infra/appstate"
	"github.com/skillcoder/restart-notifier/internal/infra/pinger"
)

// appstater is an internal interface for application state management
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	GetAllStatus() map[string]pinger.Status
}
