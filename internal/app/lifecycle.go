package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/kanban/internal/domain"
	"github.com/bft-labs/kanban/internal/ports"
)

// ShutdownTimeout is the maximum time to wait for plugins to stop.
const ShutdownTimeout = 10 * time.Second

// Status is the lifecycle status of a board session.
type Status int

const (
	StatusClosed Status = iota
	StatusOpening
	StatusOpen
	StatusClosing
	StatusFailed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusClosed:
		return "Closed"
	case StatusOpening:
		return "Opening"
	case StatusOpen:
		return "Open"
	case StatusClosing:
		return "Closing"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// allowed lists the legal next statuses for each status.
var allowed = map[Status][]Status{
	StatusClosed:  {StatusOpening},
	StatusOpening: {StatusOpen, StatusClosing, StatusFailed},
	StatusOpen:    {StatusClosing, StatusFailed},
	StatusClosing: {StatusClosed, StatusFailed},
	StatusFailed:  {StatusOpening},
}

// StatusObserver is told about every status change.
type StatusObserver interface {
	OnStatusChange(previous, current Status, reason string)
}

// Lifecycle tracks whether a session's background plugins are running.
type Lifecycle struct {
	mu       sync.RWMutex
	status   Status
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   ports.Logger
	observer StatusObserver
}

// NewLifecycle creates a lifecycle in StatusClosed.
func NewLifecycle(logger ports.Logger, observer StatusObserver) *Lifecycle {
	return &Lifecycle{
		status:   StatusClosed,
		logger:   logger,
		observer: observer,
	}
}

// Status returns the current status.
func (l *Lifecycle) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// TransitionTo moves to next, or returns ErrAlreadyOpen / ErrNotOpen when the
// move is illegal from the current status.
func (l *Lifecycle) TransitionTo(next Status, reason string) error {
	l.mu.Lock()
	prev := l.status
	if !canMove(prev, next) {
		l.mu.Unlock()
		if prev == StatusClosed || prev == StatusFailed {
			return domain.ErrNotOpen
		}
		return domain.ErrAlreadyOpen
	}
	l.status = next
	l.mu.Unlock()

	if l.observer != nil {
		l.observer.OnStatusChange(prev, next, reason)
	}
	l.logger.Info("session status",
		ports.String("from", prev.String()),
		ports.String("to", next.String()),
		ports.String("reason", reason))
	return nil
}

func canMove(from, to Status) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanOpen reports whether Start may be called.
func (l *Lifecycle) CanOpen() bool {
	s := l.Status()
	return s == StatusClosed || s == StatusFailed
}

// CanClose reports whether Stop may be called.
func (l *Lifecycle) CanClose() bool {
	s := l.Status()
	return s == StatusOpen || s == StatusOpening
}

// SetCancel stores the function that cancels the plugins' context.
func (l *Lifecycle) SetCancel(cancel context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel = cancel
}

// Cancel cancels the plugins' context, if any.
func (l *Lifecycle) Cancel() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Go runs fn as a tracked worker.
func (l *Lifecycle) Go(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// WaitWithTimeout waits for tracked workers, returning ErrShutdownTimeout
// if they outlive timeout.
func (l *Lifecycle) WaitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		l.logger.Warn("shutdown timeout, abandoning workers", ports.Duration("timeout", timeout))
		return domain.ErrShutdownTimeout
	}
}
