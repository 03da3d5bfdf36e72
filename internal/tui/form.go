package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	titleField = iota
	startField
	endField
	fieldCount
)

var fieldLabels = [fieldCount]string{"Timer Title", "Start Time", "End Time"}

// addForm collects the three inputs of a new timer
type addForm struct {
	inputs  [fieldCount]textinput.Model
	focused int
	err     string
}

func newAddForm() addForm {
	var f addForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 120
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[titleField].Placeholder = "Enter timer title..."
	f.inputs[startField].Placeholder = "2025-01-01T10:00"
	f.inputs[endField].Placeholder = "2025-01-01T12:30"
	return f
}

// values returns title, start and end as typed
func (f addForm) values() (string, string, string) {
	return f.inputs[titleField].Value(), f.inputs[startField].Value(), f.inputs[endField].Value()
}

// focus moves focus to field i, wrapping around
func (f *addForm) focus(i int) tea.Cmd {
	f.focused = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focused].Focus()
}

// reset clears every input and the error
func (f *addForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focused = titleField
	f.err = ""
}

func (f addForm) update(msg tea.Msg) (addForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

func (f addForm) view() string {
	var s strings.Builder

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
	focusedLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)

	for i, input := range f.inputs {
		style := labelStyle
		if i == f.focused {
			style = focusedLabelStyle
		}
		s.WriteString(style.Render(fieldLabels[i]) + "\n")
		s.WriteString(input.View() + "\n\n")
	}

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true)
	s.WriteString(hintStyle.Render("Times: YYYY-MM-DDTHH:MM (local) or RFC 3339") + "\n")

	if f.err != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
		s.WriteString("\n" + errStyle.Render(f.err) + "\n")
	}

	return s.String()
}
