package models

import (
	"fmt"
	"time"
)

// Timer represents a user-defined countdown between two points in time
type Timer struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

// Phase is the coarse state of a timer relative to the current time
type Phase int

const (
	NotStarted Phase = iota
	Running
	Completed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DisplayState is what a timer shows at a given instant. Hours, Minutes and
// Seconds hold the remaining time and are only set while Running.
type DisplayState struct {
	Phase   Phase
	Hours   int64
	Minutes int64
	Seconds int64
}

// Remaining builds a Running state
func Remaining(hours, minutes, seconds int64) DisplayState {
	return DisplayState{Phase: Running, Hours: hours, Minutes: minutes, Seconds: seconds}
}

func (s DisplayState) String() string {
	switch s.Phase {
	case NotStarted:
		return "Not started"
	case Completed:
		return "Completed"
	default:
		return fmt.Sprintf("%dh %dm %ds", s.Hours, s.Minutes, s.Seconds)
	}
}
