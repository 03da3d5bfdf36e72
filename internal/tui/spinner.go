package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spinner marks running timers; it advances once per tick
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
		frame:  0,
	}
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame
func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// renderProgressBar draws how much of a timer has elapsed (0-100)
func renderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	filled := int(float64(width) * progress / 100)
	empty := width - filled

	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	return barStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}

// confirmOverlay centers a yes/no question over the whole screen
func confirmOverlay(width, height int, question string) string {
	questionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[y to confirm, any other key to cancel]")

	content := questionStyle.Render(question) + "\n\n" + hint

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(content)
}
