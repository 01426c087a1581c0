package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// StatusModel renders the one-line footer: the command buffer while typing
// a command, the insert-mode indicator while editing, and otherwise the
// transient message slot or a pending operator echo.
type StatusModel struct {
	State       UIState
	CommandLine string // rendered command input, command mode only
	Message     string
	Pending     string // armed operator + motion, e.g. "ci"
	Width       int
	NoColor     bool
}

// NewStatusModel creates a status model with a default width.
func NewStatusModel() StatusModel {
	return StatusModel{Width: 80}
}

// SetWidth sets the render width of the status line.
func (m *StatusModel) SetWidth(width int) {
	m.Width = width
}

// View renders the status line.
func (m StatusModel) View() string {
	th := CurrentTheme()
	style := func(c color.Color) lipgloss.Style {
		s := lipgloss.NewStyle()
		if !m.NoColor && c != nil {
			s = s.Foreground(c)
		}
		return s
	}

	var line string
	switch m.State {
	case StateCommand:
		line = m.CommandLine
	case StateEdit:
		line = style(th.InsertColor).Bold(true).Render("-- INSERT --")
	default:
		switch {
		case m.Message != "":
			line = style(th.MessageColor).Render(m.Message)
		case m.Pending != "":
			line = style(th.MessageColor).Render(m.Pending)
		}
	}

	if w := lipgloss.Width(line); m.Width > w {
		line += strings.Repeat(" ", m.Width-w)
	}
	return line
}
