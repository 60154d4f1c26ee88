package app

import (
	"context"
	"os"

	"github.com/skillcoder/restart-notifier/internal/infra/pinger"
	"github.com/skillcoder/restart-notifier/internal/infra/shutdown"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterPinger(pinger pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner) error
	StartPinger(ctx context.Context) error
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type signalHandler interface {
	HandleSignals(ctx context.Context, cancel func())
}

type appServer interface {
	pinger.Pinger
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}

// watchLoop is the component whose exit ends the process.
type watchLoop interface {
	appServer
	Done() <-chan struct{}
	Err() error
}
