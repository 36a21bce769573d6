// Package task runs periodic background jobs such as the stale join request sweep.
package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of periodic work. It returns the number of items it processed.
type Job func(ctx context.Context) (int, error)

type entry struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	job      Job
}

// Manager runs registered jobs once at start and then on their interval.
type Manager struct {
	mu      sync.Mutex
	entries []entry
	started bool

	logger *zap.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewManager creates a new task manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Register adds a job. A non-positive interval runs the job only at start.
// timeout bounds a single run; zero means the interval (or no bound when the
// interval is zero too).
func (m *Manager) Register(name string, interval, timeout time.Duration, job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return fmt.Errorf("register %s: manager already started", name)
	}
	if timeout <= 0 {
		timeout = interval
	}
	m.entries = append(m.entries, entry{name: name, interval: interval, timeout: timeout, job: job})
	return nil
}

// Start launches one goroutine per registered job.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	m.started = true
	entries := append([]entry(nil), m.entries...)
	m.mu.Unlock()

	m.logger.Info("starting task manager", zap.Int("jobs", len(entries)))

	for _, e := range entries {
		m.wg.Add(1)
		go m.loop(ctx, e)
	}
}

// Stop stops the manager and waits for running jobs to return.
func (m *Manager) Stop() {
	m.logger.Info("stopping task manager")
	close(m.stopCh)
	m.wg.Wait()
	m.logger.Info("task manager stopped")
}

func (m *Manager) loop(ctx context.Context, e entry) {
	defer m.wg.Done()

	// Detach from the caller's cancellation; Stop ends the loop.
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	go func() {
		select {
		case <-m.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	m.run(ctx, e)
	if e.interval <= 0 {
		return
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.run(ctx, e)
		}
	}
}

func (m *Manager) run(ctx context.Context, e entry) {
	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("job panicked", zap.String("job", e.name), zap.Any("panic", r))
		}
	}()

	start := time.Now()
	n, err := e.job(runCtx)
	if err != nil {
		m.logger.Warn("job failed",
			zap.String("job", e.name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	m.logger.Debug("job completed",
		zap.String("job", e.name),
		zap.Int("processed", n),
		zap.Duration("duration", time.Since(start)))
}
