package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/restart-notifier/internal/infra/shutdown"
)

const (
	// defaultPingTimeout is the default timeout for ping operations
	defaultPingTimeout = 1 * time.Second
)

// Optional interface types for type assertions
type readyCriticalPinger interface {
	PingerReadyCritical() bool
}

type healthCriticalPinger interface {
	PingerCritical() bool
}

type timeoutPinger interface {
	PingerTimeout() time.Duration
}

// pingerInfo holds pinger instance and its configuration
type pingerInfo struct {
	pinger         Pinger
	readyCritical  bool
	healthCritical bool
	timeout        time.Duration
}

// Service runs registered pingers at a fixed interval and keeps the last
// outcome of each one.
type Service struct {
	logger     *slog.Logger
	interval   time.Duration
	pingers    map[string]*pingerInfo
	stats      map[string]*stats
	mu         sync.RWMutex
	ready      chan struct{}
	inShutdown atomic.Bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	wg         sync.WaitGroup
}

// New creates a new pinger service with the specified interval
func New(
	logger *slog.Logger,
	interval time.Duration,
) *Service {
	return &Service{
		logger:   logger.With("component", "pinger"),
		interval: interval,
		pingers:  make(map[string]*pingerInfo),
		stats:    make(map[string]*stats),
		ready:    make(chan struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

// Name returns the name of the pinger service component
func (s *Service) Name() string {
	return "pinger-service"
}

// Register registers a pinger under its name
func (s *Service) Register(pinger Pinger) error {
	if pinger == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := pinger.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pingers[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	readyCritical := true

	if rc, ok := pinger.(readyCriticalPinger); ok {
		readyCritical = rc.PingerReadyCritical()
	}

	healthCritical := true

	if hc, ok := pinger.(healthCriticalPinger); ok {
		healthCritical = hc.PingerCritical()
	}

	timeout := defaultPingTimeout

	if tp, ok := pinger.(timeoutPinger); ok {
		if customTimeout := tp.PingerTimeout(); customTimeout > 0 {
			timeout = customTimeout
		}
	}

	s.pingers[name] = &pingerInfo{
		pinger:         pinger,
		readyCritical:  readyCritical,
		healthCritical: healthCritical,
		timeout:        timeout,
	}
	s.stats[name] = &stats{}

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", readyCritical,
		"healthCritical", healthCritical,
		"timeout", timeout,
	)

	return nil
}

// Start starts the pinger service in a goroutine
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	go s.run(ctx)

	return nil
}

// Ready returns a channel that is closed after the first round of pings
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown gracefully shuts down the pinger service
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "pinger service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down pinger service")

	close(s.stopCh)

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "pinger loop exited")
	}

	// in-flight pings
	s.wg.Wait()

	return nil
}

// GetStatus returns the last outcome of the named pinger
func (s *Service) GetStatus(name string) (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, infoExists := s.pingers[name]
	st, statsExists := s.stats[name]

	if !infoExists || !statsExists {
		return Status{}, fmt.Errorf("get status: %w: %s", ErrPingerNotFound, name)
	}

	return st.status(info), nil
}

// GetAllStatus returns a snapshot of every registered pinger
func (s *Service) GetAllStatus() map[string]Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]Status, len(s.stats))

	for name, st := range s.stats {
		info, exists := s.pingers[name]
		if !exists {
			continue
		}

		result[name] = st.status(info)
	}

	return result
}

// IsReady reports whether every ready-critical pinger passed its last ping
func (s *Service) IsReady() bool {
	return s.all(func(st Status) bool { return st.IsReady })
}

// IsHealthy reports whether every health-critical pinger passed its last ping
func (s *Service) IsHealthy() bool {
	return s.all(func(st Status) bool { return st.IsHealthy })
}

func (s *Service) all(pred func(Status) bool) bool {
	for _, st := range s.GetAllStatus() {
		if !pred(st) {
			return false
		}
	}

	return true
}

// run is the main goroutine that runs pingers at intervals
func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runPingers(ctx)

	close(s.ready)

	for {
		select {
		case <-ticker.C:
			s.runPingers(ctx)
		case <-s.stopCh:
			s.logger.InfoContext(ctx, "terminating pinger loop")

			return
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}

// runPingers executes all registered pingers in parallel
func (s *Service) runPingers(ctx context.Context) {
	s.mu.RLock()
	pingers := make(map[string]*pingerInfo, len(s.pingers))
	maps.Copy(pingers, s.pingers)
	s.mu.RUnlock()

	if len(pingers) == 0 {
		return
	}

	var wg sync.WaitGroup

	for name, info := range pingers {
		if ctx.Err() != nil {
			return
		}

		wg.Add(1)
		s.wg.Add(1)

		go func() {
			defer wg.Done()
			defer s.wg.Done()

			s.ping(ctx, name, info)
		}()
	}

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
}

func (s *Service) ping(ctx context.Context, name string, info *pingerInfo) {
	pingCtx, cancel := context.WithTimeout(ctx, info.timeout)
	defer cancel()

	start := time.Now()
	err := info.pinger.Ping(pingCtx)
	latency := time.Since(start)

	s.mu.Lock()
	if st, ok := s.stats[name]; ok {
		st.record(start, latency, err)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.DebugContext(ctx, "pinger error",
			"name", name,
			"latency", latency,
			"reason", err,
		)

		return
	}

	s.logger.DebugContext(ctx, "pinger success",
		"name", name,
		"latency", latency,
	)
}
