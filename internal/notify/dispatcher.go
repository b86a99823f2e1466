package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLimit bounds the number of side effects in flight.
	DefaultLimit   = 16
	DefaultTimeout = 45 * time.Second
)

// Dispatcher runs background tasks with a concurrency limit. Tasks never
// report back to the caller; failures are logged.
type Dispatcher struct {
	group   errgroup.Group
	timeout time.Duration
	logger  *zap.SugaredLogger

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher. Non-positive values fall back to defaults.
func NewDispatcher(limit int, timeout time.Duration, logger *zap.SugaredLogger) *Dispatcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := &Dispatcher{timeout: timeout, logger: logger}
	d.group.SetLimit(limit)
	return d
}

// Go schedules task. It returns false when the dispatcher is saturated or closed,
// in which case the task is dropped.
func (d *Dispatcher) Go(name string, task func(ctx context.Context) error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warnw("dispatcher closed, task dropped", "task", name)
		return false
	}

	started := d.group.TryGo(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				d.logger.Errorw("background task panicked", "task", name, "panic", r)
			}
		}()

		if err := task(ctx); err != nil {
			d.logger.Warnw("background task failed", "task", name, "error", err)
		}
		return nil
	})
	if !started {
		d.logger.Warnw("dispatcher saturated, task dropped", "task", name)
	}
	return started
}

// Wait stops accepting tasks and blocks until the running ones finish.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	_ = d.group.Wait()
}

// Shutdown waits for running tasks or gives up when ctx is done.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
