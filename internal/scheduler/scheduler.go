// Package scheduler drives every displayed timer from one shared tick.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/HamzaEzziymy/timers/internal/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultInterval is the refresh period of the timer list
const DefaultInterval = time.Second

// Callback is invoked once per tick with the current time
type Callback func(now time.Time)

type registration struct {
	id        string
	fn        Callback
	cancelled bool // guarded by Scheduler.mu
}

// Scheduler calls each registered callback on a single periodic tick.
// Callbacks run in registration order on the Run goroutine.
type Scheduler struct {
	interval  time.Duration
	clock     clock.Clock
	logger    *zap.Logger
	mu        sync.RWMutex
	callbacks []*registration
	closed    bool
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a scheduler ticking every interval
func New(interval time.Duration, c clock.Clock, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if c == nil {
		c = clock.RealClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		interval: interval,
		clock:    c,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Register adds fn to the tick and returns a handle for Unregister.
// It returns "" once the scheduler is closed.
func (s *Scheduler) Register(fn Callback) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}

	id := uuid.New().String()
	s.callbacks = append(s.callbacks, &registration{id: id, fn: fn})
	s.logger.Debug("Registered tick callback", zap.String("id", id))
	return id
}

// Unregister releases a callback so it is never invoked again
func (s *Scheduler) Unregister(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.callbacks {
		if r.id == id {
			r.cancelled = true
			s.callbacks = append(s.callbacks[:i:i], s.callbacks[i+1:]...)
			s.logger.Debug("Unregistered tick callback", zap.String("id", id))
			return true
		}
	}
	return false
}

// UnregisterAll releases every callback
func (s *Scheduler) UnregisterAll() {
	s.mu.Lock()
	s.cancelAllLocked()
	s.mu.Unlock()
}

func (s *Scheduler) cancelAllLocked() {
	for _, r := range s.callbacks {
		r.cancelled = true
	}
	s.callbacks = nil
}

// Len returns the number of registered callbacks
func (s *Scheduler) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.callbacks)
}

// Tick runs one round of callbacks synchronously. A callback unregistered
// earlier in the same round is skipped.
func (s *Scheduler) Tick() {
	s.mu.RLock()
	regs := make([]*registration, len(s.callbacks))
	copy(regs, s.callbacks)
	s.mu.RUnlock()

	now := s.clock.Now()
	for _, r := range regs {
		if !s.active(r) {
			continue
		}
		r.fn(now)
	}
}

func (s *Scheduler) active(r *registration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !r.cancelled
}

// Run ticks until ctx is cancelled or Close is called
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Close stops Run and drops all callbacks
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.cancelAllLocked()
		close(s.done)
		s.mu.Unlock()
	})
}
