package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/cfged/pkg/settings"
)

const brandName = settings.CliBinaryName

// Model is the Bubble Tea shell around the editor session: it owns the
// terminal dimensions, the command-mode line input, and the footer/help
// components, and routes every key through the session's dispatcher.
type Model struct {
	session *Session
	command textinput.Model
	status  StatusModel
	help    HelpModel

	width   int
	height  int
	noColor bool
}

// NewModel wraps a session for interactive use.
func NewModel(s *Session, noColor bool) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.SetWidth(80)

	return &Model{
		session: s,
		command: ti,
		status:  NewStatusModel(),
		help:    NewHelpModel(s.Mode),
		noColor: noColor,
	}
}

// Session exposes the underlying session, mainly for tests and embedders.
func (m *Model) Session() *Session {
	return m.session
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.command.SetWidth(msg.Width - 2)
		m.status.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	s := m.session

	// The message slot shows one condition at a time; every key press
	// starts from a clean slate.
	s.Message = ""

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if s.State == StateCommand {
		return m.handleCommandKey(msg, key)
	}

	if HandleKey(s, key) {
		return m, tea.Quit
	}

	if s.State == StateCommand {
		// Dispatch just opened command mode: seed the line input with the
		// sigil as its prompt.
		m.command.SetValue("")
		m.command.Prompt = string(s.CommandSigil)
		m.command.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// handleCommandKey owns the command-mode line buffer. Enter submits the
// sigil-prefixed buffer, Esc leaves, and Backspace below the sigil exits
// the mode; everything else is plain line editing.
func (m *Model) handleCommandKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	s := m.session
	switch key {
	case "enter":
		buffer := string(s.CommandSigil) + m.command.Value()
		m.leaveCommandMode()
		if s.ExecuteCommand(buffer) {
			return m, tea.Quit
		}
		return m, nil
	case "esc":
		m.leaveCommandMode()
		s.State = StateNormal
		return m, nil
	case "backspace":
		if m.command.Value() == "" {
			m.leaveCommandMode()
			s.State = StateNormal
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.command, cmd = m.command.Update(msg)
	return m, cmd
}

func (m *Model) leaveCommandMode() {
	m.command.Blur()
	m.command.SetValue("")
}

func (m *Model) View() tea.View {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	treeHeight := height - 4
	if treeHeight < 1 {
		treeHeight = 1
	}

	body := m.renderTree(treeHeight)
	if m.session.ShowHelp {
		m.help.Visible = true
		m.help.Mode = m.session.Mode
		m.help.NoColor = m.noColor
		body = overlayPanel(body, m.help.View(width, treeHeight))
	}

	m.status.State = m.session.State
	m.status.Message = m.session.Message
	m.status.Pending = operatorEcho(m.session.Operator)
	m.status.NoColor = m.noColor
	m.status.SetWidth(width)
	m.status.CommandLine = ""
	if m.session.State == StateCommand {
		m.status.CommandLine = m.command.View()
	}

	v := tea.NewView(m.renderHeader() + "\n\n" + body + "\n\n" + m.status.View())
	v.AltScreen = true
	return v
}
