package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HamzaEzziymy/timers/internal/clock"
	"github.com/HamzaEzziymy/timers/internal/timers"
	"github.com/HamzaEzziymy/timers/pkg/models"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewMode int

const (
	listView viewMode = iota
	addView
	confirmClearView
)

// linesPerTimer is the height of one rendered timer including its spacer
const linesPerTimer = 4

type model struct {
	ctx         context.Context
	store       *timers.Store
	clock       clock.Clock
	interval    time.Duration
	timers      []models.Timer
	states      []models.DisplayState
	now         time.Time
	currentMode viewMode
	cursor      int
	form        addForm
	spinner     *Spinner
	viewport    viewport.Model
	changes     *changeFeed
	unsubscribe func()
	status      string
	statusErr   bool
	ready       bool
	width       int
	height      int
}

func initialModel(ctx context.Context, store *timers.Store, c clock.Clock, interval time.Duration) model {
	if c == nil {
		c = clock.RealClock{}
	}
	if interval <= 0 {
		interval = time.Second
	}

	changes := newChangeFeed()
	release := store.Subscribe(changes.send)
	unsubscribe := func() {
		release()
		// ends the pending waitForChangeCmd
		changes.close()
	}

	m := model{
		ctx:         ctx,
		store:       store,
		clock:       c,
		interval:    interval,
		currentMode: listView,
		form:        newAddForm(),
		spinner:     NewSpinner(),
		changes:     changes,
		unsubscribe: unsubscribe,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), waitForChangeCmd(m.changes.ch))
}

// refresh re-reads the list and recomputes every display state
func (m *model) refresh() {
	m.timers = m.store.Timers()
	m.recompute()
	if m.cursor >= len(m.timers) {
		m.cursor = len(m.timers) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.updateViewport()
}

// recompute evaluates all timers against the clock
func (m *model) recompute() {
	m.now = m.clock.Now()
	m.states = make([]models.DisplayState, len(m.timers))
	for i, t := range m.timers {
		m.states[i] = clock.EvaluateTimer(t, m.now)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 3
		}
		m.updateViewport()

	case TickMsg:
		m.spinner.Next()
		m.recompute()
		m.updateViewport()
		return m, tickCmd(m.interval)

	case TimersChangedMsg:
		m.refresh()
		return m, waitForChangeCmd(m.changes.ch)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.unsubscribe()
			return m, tea.Quit
		}

		switch m.currentMode {
		case addView:
			return m.updateAddView(msg)
		case confirmClearView:
			return m.updateConfirmClear(msg)
		}

		m.clearStatus()
		switch msg.String() {
		case "q":
			m.unsubscribe()
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.updateViewport()
			}

		case "down", "j":
			if m.cursor < len(m.timers)-1 {
				m.cursor++
				m.updateViewport()
			}

		case "a":
			m.currentMode = addView
			m.form.reset()
			return m, m.form.focus(titleField)

		case "d", "x", "delete":
			m.deleteSelected()

		case "C":
			if len(m.timers) > 0 {
				m.currentMode = confirmClearView
			}
		}
		// keys are not forwarded: the viewport's own bindings clash with ours
		return m, nil
	}

	if m.currentMode == listView {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) updateAddView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.reset()
		m.currentMode = listView
		return m, nil

	case "tab", "down":
		return m, m.form.focus(m.form.focused + 1)

	case "shift+tab", "up":
		return m, m.form.focus(m.form.focused - 1)

	case "enter":
		title, start, end := m.form.values()
		added, err := m.store.AddFromStrings(m.ctx, title, start, end)
		if err != nil {
			// inputs stay as typed so the user can fix them
			m.form.err = err.Error()
			return m, nil
		}
		m.form.reset()
		m.currentMode = listView
		m.refresh()
		m.cursor = len(m.timers) - 1
		m.status = fmt.Sprintf("Added %q", added.Title)
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.currentMode = listView
	switch msg.String() {
	case "y", "Y":
		if err := m.store.Clear(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.status = "All timers deleted"
	default:
		m.status = "Clear cancelled"
	}
	return m, nil
}

func (m *model) deleteSelected() {
	if len(m.timers) == 0 {
		return
	}
	title := m.timers[m.cursor].Title
	removed, err := m.store.DeleteAt(m.ctx, m.cursor)
	if err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	if removed {
		m.status = fmt.Sprintf("Deleted %q", title)
	}
}

// setError reports a failed store operation in the footer until the next key
func (m *model) setError(err error) {
	m.status = "Error: " + err.Error()
	m.statusErr = true
}

func (m *model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTimers())

	// keep the selected timer on screen
	top := m.cursor * linesPerTimer
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom := top + linesPerTimer; bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m model) renderTimers() string {
	if len(m.timers) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		return emptyStyle.Render("No timers yet. Press a to add one!")
	}

	var s strings.Builder
	for i, t := range m.timers {
		s.WriteString(m.renderTimer(i, t))
		if i < len(m.timers)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

func (m model) renderTimer(i int, t models.Timer) string {
	var s strings.Builder

	cursor := "  "
	titleStyle := lipgloss.NewStyle().Bold(true)
	if i == m.cursor {
		cursor = "> "
		titleStyle = titleStyle.Foreground(lipgloss.Color("212"))
	}
	s.WriteString(titleStyle.Render(cursor+t.Title) + "\n")

	boundsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
	bounds := fmt.Sprintf("  Start: %s   End: %s",
		t.StartTime.Local().Format("2006-01-02 15:04"),
		t.EndTime.Local().Format("2006-01-02 15:04"))
	s.WriteString(boundsStyle.Render(bounds) + "\n")

	state := m.states[i]
	stateStyle := lipgloss.NewStyle().Bold(true)
	switch state.Phase {
	case models.Completed:
		stateStyle = stateStyle.Foreground(lipgloss.Color("42"))
		s.WriteString("  " + stateStyle.Render(state.String()))
	case models.Running:
		stateStyle = stateStyle.Foreground(lipgloss.Color("33"))
		progress := clock.Progress(t.StartTime, t.EndTime, m.now)
		s.WriteString(fmt.Sprintf("  %s %s  %s",
			m.spinner.View(),
			stateStyle.Render(state.String()),
			renderProgressBar(progress, 20)))
	default:
		stateStyle = stateStyle.Foreground(lipgloss.Color("33"))
		s.WriteString("  " + stateStyle.Render(state.String()))
	}
	s.WriteString("\n")

	return s.String()
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	switch m.currentMode {
	case addView:
		return fmt.Sprintf("%s\n\n%s\n%s", header, m.form.view(), footer)
	case confirmClearView:
		return confirmOverlay(m.width, m.height, "Are you sure you want to delete all timers?")
	default:
		return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
	}
}

func (m model) renderHeader() string {
	title := fmt.Sprintf("Multiple Timers (%d)", len(m.timers))
	if m.currentMode == addView {
		title = "Multiple Timers - Add Timer"
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	var info string
	if m.currentMode == addView {
		info = "tab: next field • enter: add • esc: cancel"
	} else {
		info = "↑/↓: navigate • a: add • d: delete"
		if len(m.timers) > 0 {
			info += " • C: clear all"
		}
		info += " • q: quit"
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	footer := style.Render(info)
	if m.status != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("196"))
		}
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	return footer
}

// ShowTUI runs the timer list until the user quits
func ShowTUI(ctx context.Context, store *timers.Store, c clock.Clock, interval time.Duration) error {
	p := tea.NewProgram(
		initialModel(ctx, store, c, interval),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(model); ok {
		m.unsubscribe()
	}
	return nil
}
