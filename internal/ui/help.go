package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/cfged/pkg/settings"
)

// HelpModel renders the keybinding reference overlay. It is toggled, not
// modal: keys keep dispatching underneath while it is visible.
type HelpModel struct {
	Visible bool
	Mode    settings.InputMode
	NoColor bool
}

// NewHelpModel creates a help model for the given keymap.
func NewHelpModel(mode settings.InputMode) HelpModel {
	return HelpModel{Mode: mode}
}

// View renders the overlay panel centered in an area of the given size, or
// "" when hidden.
func (m HelpModel) View(width, height int) string {
	if !m.Visible {
		return ""
	}

	th := CurrentTheme()
	lines := vimHelpText()
	title := " Help (vim mode) "
	if m.Mode == settings.ModeBasic {
		lines = basicHelpText()
		title = " Help (basic mode) "
	}

	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, m.formatHelpLine(line))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(th.HelpBorder).
		Padding(0, 1)
	if m.NoColor {
		border = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	}

	panel := border.Render(title + "\n" + strings.Join(rendered, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// formatHelpLine styles one help line: section rules dim, "key  description"
// pairs get a colored key column, everything else passes through.
func (m HelpModel) formatHelpLine(line string) string {
	if m.NoColor {
		return line
	}
	th := CurrentTheme()
	switch {
	case strings.Contains(line, "──"):
		return lipgloss.NewStyle().Foreground(th.HelpSection).Render(line)
	case strings.HasPrefix(line, "  "):
		parts := strings.SplitN(strings.TrimPrefix(line, "  "), "  ", 2)
		if len(parts) == 2 {
			key := lipgloss.NewStyle().Foreground(th.HelpKey).Width(12).Render(parts[0])
			return "  " + key + strings.TrimLeft(parts[1], " ")
		}
		return line
	default:
		return line
	}
}

func vimHelpText() []string {
	return []string{
		"",
		"  Navigation",
		"  ──────────────────────────────",
		"  h           Left (key) / collapse",
		"  j           Down",
		"  k           Up",
		"  l           Right (value) / expand",
		"  w / b       Next / prev word",
		"  Space       Toggle expand/collapse",
		"  g           Go to top",
		"  G           Go to bottom",
		"  Ctrl+d      Page down",
		"  Ctrl+u      Page up",
		"",
		"  Editing",
		"  ──────────────────────────────",
		"  i           Edit (insert mode)",
		"  a           Edit (append mode)",
		"  ciw         Change word under cursor",
		"  cip         Change entire value/key",
		"  diw         Delete word",
		"  dip         Clear value to null",
		"  dd          Delete entry",
		"  o           Add new key",
		"",
		"  Commands",
		"  ──────────────────────────────",
		"  /           Search",
		"  :w          Save",
		"  :q          Quit",
		"  :wq         Save and quit",
		"  n / N       Next / prev match",
		"  Esc         Clear / cancel",
		"",
		"  Other",
		"  ──────────────────────────────",
		"  ?           Toggle this help",
		"",
	}
}

func basicHelpText() []string {
	return []string{
		"",
		"  Navigation",
		"  ──────────────────────────────",
		"  ↓           Move down",
		"  ↑           Move up",
		"  ←           Collapse / go to parent",
		"  →           Expand",
		"  Enter       Edit value / toggle",
		"  Home        Go to top",
		"  End         Go to bottom",
		"  Page Down   Page down",
		"  Page Up     Page up",
		"",
		"  Editing",
		"  ──────────────────────────────",
		"  Enter       Edit selected value",
		"  Delete      Delete key",
		"  Insert      Add new key",
		"  Ctrl+S      Save",
		"",
		"  Search",
		"  ──────────────────────────────",
		"  Ctrl+F      Search",
		"  F3          Next match",
		"",
		"  Other",
		"  ──────────────────────────────",
		"  F1          Toggle this help",
		"  Esc         Quit",
		"",
	}
}
