package tui

import (
	"sync"
	"time"

	"github.com/HamzaEzziymy/timers/pkg/models"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	// TickMsg is the shared refresh tick for every displayed timer
	TickMsg time.Time

	// TimersChangedMsg carries the list after a store mutation
	TimersChangedMsg struct {
		Timers []models.Timer
	}
)

// tickCmd schedules the next refresh
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChangeCmd blocks until the store reports a change
func waitForChangeCmd(changes <-chan []models.Timer) tea.Cmd {
	return func() tea.Msg {
		list, ok := <-changes
		if !ok {
			return nil
		}
		return TimersChangedMsg{Timers: list}
	}
}

// changeFeed hands store snapshots to the program, keeping only the newest.
// Sends after close are dropped.
type changeFeed struct {
	mu     sync.Mutex
	ch     chan []models.Timer
	closed bool
}

func newChangeFeed() *changeFeed {
	return &changeFeed{ch: make(chan []models.Timer, 1)}
}

func (f *changeFeed) send(list []models.Timer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- list:
	default:
	}
}

func (f *changeFeed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}
