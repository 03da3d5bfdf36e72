package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HamzaEzziymy/timers/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTickCallsEveryCallbackWithClockTime(t *testing.T) {
	now := time.Date(2025, 1, 1, 11, 0, 15, 0, time.UTC)
	s := New(time.Second, clock.NewFakeClock(now), nil)
	defer s.Close()

	var order []string
	s.Register(func(got time.Time) {
		assert.True(t, got.Equal(now))
		order = append(order, "a")
	})
	s.Register(func(time.Time) { order = append(order, "b") })

	s.Tick()
	s.Tick()
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

func TestUnregisterStopsCallback(t *testing.T) {
	s := New(time.Second, clock.NewFakeClock(time.Now()), nil)
	defer s.Close()

	var a, b int
	idA := s.Register(func(time.Time) { a++ })
	s.Register(func(time.Time) { b++ })
	require.NotEmpty(t, idA)

	s.Tick()
	assert.True(t, s.Unregister(idA))
	assert.False(t, s.Unregister(idA), "second unregister is a no-op")
	s.Tick()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, s.Len())

	s.UnregisterAll()
	assert.Equal(t, 0, s.Len())
}

func TestUnregisterDuringTickSkipsCallback(t *testing.T) {
	s := New(time.Second, clock.NewFakeClock(time.Now()), nil)
	defer s.Close()

	var idB string
	var b int
	s.Register(func(time.Time) { s.Unregister(idB) })
	idB = s.Register(func(time.Time) { b++ })

	s.Tick()
	assert.Equal(t, 0, b, "callback released earlier in the tick must not run")
	assert.Equal(t, 1, s.Len())
}

func TestUnregisterAllDuringTickSkipsRemaining(t *testing.T) {
	s := New(time.Second, clock.NewFakeClock(time.Now()), nil)
	defer s.Close()

	var ran []string
	s.Register(func(time.Time) {
		ran = append(ran, "a")
		s.UnregisterAll()
	})
	s.Register(func(time.Time) { ran = append(ran, "b") })
	s.Register(func(time.Time) { ran = append(ran, "c") })

	s.Tick()
	assert.Equal(t, []string{"a"}, ran)
	assert.Equal(t, 0, s.Len())
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(5*time.Millisecond, nil, nil)
	defer s.Close()

	var ticks atomic.Int32
	s.Register(func(time.Time) { ticks.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestCloseStopsRunAndRejectsRegistration(t *testing.T) {
	s := New(time.Hour, nil, nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	s.Register(func(time.Time) {})
	s.Close()
	s.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Register(func(time.Time) {}))
}
