package clock

import (
	"testing"
	"time"

	"github.com/HamzaEzziymy/timers/pkg/models"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", s, err)
	}
	return ts
}

// TestEvaluate covers each phase and the boundary instants
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		now   string
		want  models.DisplayState
	}{
		{
			name:  "launch example",
			start: "2025-01-01T10:00:00Z",
			end:   "2025-01-01T12:30:00Z",
			now:   "2025-01-01T11:00:15Z",
			want:  models.Remaining(1, 29, 45),
		},
		{
			name:  "completed example",
			start: "2025-06-01T00:00:00Z",
			end:   "2025-06-01T01:00:00Z",
			now:   "2025-06-01T02:00:00Z",
			want:  models.DisplayState{Phase: models.Completed},
		},
		{
			name:  "before start",
			start: "2025-06-01T00:00:00Z",
			end:   "2025-06-01T01:00:00Z",
			now:   "2025-05-31T23:59:59Z",
			want:  models.DisplayState{Phase: models.NotStarted},
		},
		{
			name:  "exactly at start",
			start: "2025-06-01T00:00:00Z",
			end:   "2025-06-01T01:00:00Z",
			now:   "2025-06-01T00:00:00Z",
			want:  models.Remaining(1, 0, 0),
		},
		{
			name:  "exactly at end",
			start: "2025-06-01T00:00:00Z",
			end:   "2025-06-01T01:00:00Z",
			now:   "2025-06-01T01:00:00Z",
			want:  models.Remaining(0, 0, 0),
		},
		{
			name:  "more than a day left",
			start: "2025-06-01T00:00:00Z",
			end:   "2025-06-03T03:04:05Z",
			now:   "2025-06-01T00:00:00Z",
			want:  models.Remaining(51, 4, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(mustParse(t, tt.start), mustParse(t, tt.end), mustParse(t, tt.now))
			if got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestEvaluateTruncates checks sub-second remainders are dropped, not rounded
func TestEvaluateTruncates(t *testing.T) {
	start := mustParse(t, "2025-01-01T00:00:00Z")
	end := start.Add(10 * time.Second)
	now := start.Add(500 * time.Millisecond)

	got := Evaluate(start, end, now)
	if got != models.Remaining(0, 0, 9) {
		t.Errorf("Expected 0h 0m 9s, got %s", got)
	}
}

// TestEvaluateMonotonic walks now across the whole span and checks the phase never goes backwards
func TestEvaluateMonotonic(t *testing.T) {
	start := mustParse(t, "2025-01-01T10:00:00Z")
	end := start.Add(90 * time.Second)

	last := models.NotStarted
	for now := start.Add(-30 * time.Second); now.Before(end.Add(30 * time.Second)); now = now.Add(250 * time.Millisecond) {
		state := Evaluate(start, end, now)
		if state.Phase < last {
			t.Fatalf("Phase went backwards at %s: %s after %s", now, state.Phase, last)
		}
		last = state.Phase

		if again := Evaluate(start, end, now); again != state {
			t.Fatalf("Evaluate is not deterministic at %s", now)
		}
	}

	if last != models.Completed {
		t.Errorf("Expected to finish Completed, got %s", last)
	}
}

func TestDisplayStateString(t *testing.T) {
	start := mustParse(t, "2025-01-01T10:00:00Z")
	end := mustParse(t, "2025-01-01T12:30:00Z")

	if s := Evaluate(start, end, mustParse(t, "2025-01-01T11:00:15Z")).String(); s != "1h 29m 45s" {
		t.Errorf("Unexpected running text: %q", s)
	}
	if s := Evaluate(start, end, start.Add(-time.Minute)).String(); s != "Not started" {
		t.Errorf("Unexpected not-started text: %q", s)
	}
	if s := Evaluate(start, end, end.Add(time.Minute)).String(); s != "Completed" {
		t.Errorf("Unexpected completed text: %q", s)
	}
}

func TestProgress(t *testing.T) {
	start := mustParse(t, "2025-01-01T10:00:00Z")
	end := start.Add(100 * time.Second)

	tests := []struct {
		now  time.Time
		want float64
	}{
		{start.Add(-time.Second), 0},
		{start, 0},
		{start.Add(25 * time.Second), 25},
		{end, 100},
		{end.Add(time.Hour), 100},
	}

	for _, tt := range tests {
		if got := Progress(start, end, tt.now); got != tt.want {
			t.Errorf("Progress at %s = %.2f, want %.2f", tt.now, got, tt.want)
		}
	}
}

func TestFakeClock(t *testing.T) {
	base := mustParse(t, "2025-01-01T10:00:00Z")
	c := NewFakeClock(base)

	c.Advance(90 * time.Second)
	if !c.Now().Equal(base.Add(90 * time.Second)) {
		t.Errorf("Advance did not move the clock: %s", c.Now())
	}

	c.Set(base)
	if !c.Now().Equal(base) {
		t.Errorf("Set did not move the clock: %s", c.Now())
	}
}

func BenchmarkEvaluate(b *testing.B) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(150 * time.Minute)
	now := start.Add(time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(start, end, now)
	}
}
