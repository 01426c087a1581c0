package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/cfged/internal/tree"
)

// renderHeader draws the top line: file name, dirty marker, current key
// path, and the brand chip, spread across the full width.
func (m *Model) renderHeader() string {
	th := CurrentTheme()
	s := m.session

	path := s.CurrentPath()
	if path == "" {
		path = "(root)"
	}
	brand := " " + brandName + " "
	dirty := ""
	if s.Dirty {
		dirty = " [+]"
	}

	file := s.FilePath
	fileMax := m.width - lipgloss.Width(path) - len(brand) - len(dirty) - 4
	if fileMax > 1 && runewidth.StringWidth(file) > fileMax {
		file = "…" + runewidth.TruncateLeft(file, runewidth.StringWidth(file)-(fileMax-1), "")
	}

	padding := m.width - runewidth.StringWidth(file) - len(dirty) - lipgloss.Width(path) - len(brand) - 2
	if padding < 0 {
		padding = 0
	}

	fileStyle := lipgloss.NewStyle().Foreground(th.HeaderFile).Bold(true)
	dirtyStyle := lipgloss.NewStyle().Foreground(th.DirtyColor)
	pathStyle := lipgloss.NewStyle().Foreground(th.HeaderPath)
	brandStyle := lipgloss.NewStyle().Foreground(th.BrandFG).Background(th.BrandBG)
	if m.noColor {
		fileStyle = lipgloss.NewStyle()
		dirtyStyle = lipgloss.NewStyle()
		pathStyle = lipgloss.NewStyle()
		brandStyle = lipgloss.NewStyle()
	}

	return fileStyle.Render(file) +
		dirtyStyle.Render(dirty) +
		strings.Repeat(" ", padding) +
		pathStyle.Render(path) + " " +
		brandStyle.Render(brand)
}

// renderTree draws the visible slice of the projection, tracking the scroll
// offset so the selection stays inside the window.
func (m *Model) renderTree(height int) string {
	s := m.session
	rows := s.Rows()

	s.Cursor.ScrollOffset = scrollOffset(s.Cursor.Selected, s.Cursor.ScrollOffset, height)
	start := s.Cursor.ScrollOffset

	var b strings.Builder
	count := 0
	for i := start; i < len(rows) && count < height; i++ {
		b.WriteString(m.renderRow(i, rows[i]))
		b.WriteString("\n")
		count++
	}
	for ; count < height; count++ {
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// overlayPanel draws panel on top of base, line by line. Whitespace-only
// panel lines are transparent, so tree rows above and below a centered
// popup stay visible.
func overlayPanel(base, panel string) string {
	bLines := strings.Split(base, "\n")
	pLines := strings.Split(panel, "\n")
	n := len(bLines)
	if len(pLines) > n {
		n = len(pLines)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		var b, p string
		if i < len(bLines) {
			b = bLines[i]
		}
		if i < len(pLines) {
			p = pLines[i]
		}
		if strings.TrimSpace(p) != "" {
			out[i] = p
		} else {
			out[i] = b
		}
	}
	return strings.Join(out, "\n")
}

// scrollOffset keeps selected inside [offset, offset+height).
func scrollOffset(selected, offset, height int) int {
	if height <= 0 {
		return offset
	}
	if selected >= offset+height {
		return selected - height + 1
	}
	if selected < offset {
		return selected
	}
	return offset
}

func (m *Model) renderRow(index int, row tree.Row) string {
	s := m.session
	th := CurrentTheme()

	indent := strings.Repeat("  ", row.Depth)
	marker := "  "
	if row.Expandable {
		if row.Expanded {
			marker = "▼ "
		} else {
			marker = "▶ "
		}
	}

	selected := index == s.Cursor.Selected
	match := containsIndex(s.Search.Results, index)
	onKey := selected && !s.Cursor.OnValue
	onValue := selected && s.Cursor.OnValue

	style := m.colorStyle
	sep := style(th.SeparatorColor).Render(": ")
	markerText := style(th.SeparatorColor).Render(marker)
	tag := style(th.TypeColor).Render(fmt.Sprintf(" (%s)", row.Type))

	if selected && s.State == StateEdit {
		return indent + markerText + m.renderEditingRow(row, sep, tag)
	}

	keyStyle := style(th.KeyColor)
	switch {
	case match:
		keyStyle = style(th.MatchColor).Bold(true)
	case selected:
		keyStyle = style(th.KeyColor).Bold(true)
	}
	valueStyle := style(m.valueColor(row.Type))

	switch {
	case onKey:
		before, cur, after := splitAtCursor(row.Key, s.Cursor.Pos)
		focus := style(th.SelectedColor).Bold(true)
		block := style(th.CursorFG).Background(th.CursorBG)
		if m.noColor {
			block = lipgloss.NewStyle().Reverse(true)
		}
		return indent + markerText +
			focus.Render(before) + block.Render(cur) + focus.Render(after) +
			sep + valueStyle.Render(row.Preview) + tag
	case onValue:
		before, cur, after := splitAtCursor(row.Preview, s.Cursor.Pos)
		focus := style(th.SelectedColor).Bold(true)
		block := style(th.CursorFG).Background(th.CursorBG)
		if m.noColor {
			block = lipgloss.NewStyle().Reverse(true)
		}
		return indent + markerText +
			keyStyle.Render(row.Key) + sep +
			focus.Render(before) + block.Render(cur) + focus.Render(after) + tag
	default:
		return indent + markerText +
			keyStyle.Render(row.Key) + sep + valueStyle.Render(row.Preview) + tag
	}
}

// renderEditingRow draws the selected row with the live edit buffer and a
// bar cursor in place of the field being edited.
func (m *Model) renderEditingRow(row tree.Row, sep, tag string) string {
	s := m.session
	th := CurrentTheme()
	style := m.colorStyle

	editStyle := style(th.EditColor)
	barStyle := style(th.EditCursorColor).Bold(true)
	dimStyle := style(th.HeaderPath)

	before := editStyle.Render(string(s.Edit.Buffer[:s.Edit.Cursor]))
	after := editStyle.Render(string(s.Edit.Buffer[s.Edit.Cursor:]))
	bar := barStyle.Render("│")

	if s.Edit.EditingKey {
		return before + bar + after + sep + dimStyle.Render(row.Preview) + tag
	}
	return dimStyle.Render(row.Key) + sep + before + bar + after + tag
}

// colorStyle builds a foreground style, dropping color when disabled.
func (m *Model) colorStyle(c color.Color) lipgloss.Style {
	if m.noColor || c == nil {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

func (m *Model) valueColor(typeTag string) color.Color {
	th := CurrentTheme()
	switch typeTag {
	case "str":
		return th.StringColor
	case "num":
		return th.NumberColor
	case "bool":
		return th.BoolColor
	case "null":
		return th.NullColor
	default:
		return th.ContainerColor
	}
}

// splitAtCursor divides text into the part before the cursor, the character
// under it, and the rest. Empty text renders a bare block.
func splitAtCursor(text string, pos int) (string, string, string) {
	runes := []rune(text)
	if len(runes) == 0 {
		return "", "█", ""
	}
	if pos > len(runes)-1 {
		pos = len(runes) - 1
	}
	if pos < 0 {
		pos = 0
	}
	return string(runes[:pos]), string(runes[pos]), string(runes[pos+1:])
}

func containsIndex(indices []int, idx int) bool {
	for _, i := range indices {
		if i == idx {
			return true
		}
	}
	return false
}

// operatorEcho renders the pending operator and motion for the footer.
func operatorEcho(o OperatorState) string {
	if o.Pending == 0 {
		return ""
	}
	return string(o.Pending) + o.Motion
}
