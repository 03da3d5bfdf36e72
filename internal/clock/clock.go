// Package clock turns a timer's bounds and the current time into what the
// timer should display.
package clock

import (
	"sync"
	"time"

	"github.com/HamzaEzziymy/timers/pkg/models"
)

const (
	msPerHour   = int64(60 * 60 * 1000)
	msPerMinute = int64(60 * 1000)
	msPerSecond = int64(1000)
)

// Clock abstracts time.Now() so tests can pin the current time
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// Now returns the current local time
func (RealClock) Now() time.Time {
	return time.Now()
}

// FakeClock is a settable Clock for tests
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a FakeClock fixed at now
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Evaluate computes the display state of a timer running from start to end,
// as seen at now. Both bounds are inclusive for the running phase.
func Evaluate(start, end, now time.Time) models.DisplayState {
	if now.Before(start) {
		return models.DisplayState{Phase: models.NotStarted}
	}
	if now.After(end) {
		return models.DisplayState{Phase: models.Completed}
	}

	difference := end.Sub(now).Milliseconds()
	hours := difference / msPerHour
	minutes := (difference % msPerHour) / msPerMinute
	seconds := (difference % msPerMinute) / msPerSecond

	return models.Remaining(hours, minutes, seconds)
}

// EvaluateTimer is Evaluate applied to a timer record
func EvaluateTimer(t models.Timer, now time.Time) models.DisplayState {
	return Evaluate(t.StartTime, t.EndTime, now)
}

// Progress returns how much of the span from start to end has elapsed at now,
// as a percentage clamped to [0, 100].
func Progress(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 100
	}
	return float64(elapsed) / float64(total) * 100
}
