package ui

import (
	"strings"
	"unicode/utf8"
)

// Row motions reset the intra-row cursor; column motions move it within the
// active text and flip between key and value at the edges.

// MoveDown selects the next row, clamped to the projection.
func (s *Session) MoveDown() {
	rows := s.Rows()
	if s.Cursor.Selected < len(rows)-1 {
		s.Cursor.Selected++
		s.Cursor.ResetPos()
	}
}

// MoveUp selects the previous row.
func (s *Session) MoveUp() {
	if s.Cursor.Selected > 0 {
		s.Cursor.Selected--
		s.Cursor.ResetPos()
	}
}

// currentTextLen is the rune length of whichever text the cursor targets.
func (s *Session) currentTextLen() int {
	row, ok := s.CurrentRow()
	if !ok {
		return 0
	}
	if s.Cursor.OnValue {
		return utf8.RuneCountInString(row.Preview)
	}
	return utf8.RuneCountInString(row.Key)
}

// MoveLeft moves the cursor one column left; at column 0 it flips from
// value to key, and on the key it collapses the current row.
func (s *Session) MoveLeft() {
	if s.Cursor.Pos > 0 {
		s.Cursor.Pos--
		return
	}
	if s.Cursor.OnValue {
		s.Cursor.OnValue = false
		if row, ok := s.CurrentRow(); ok {
			if n := utf8.RuneCountInString(row.Key); n > 0 {
				s.Cursor.Pos = n - 1
			} else {
				s.Cursor.Pos = 0
			}
		}
		return
	}
	s.CollapseCurrent()
}

// MoveRight moves the cursor one column right; at the end of the key it
// flips to the value, and at the end of the value it expands the row.
func (s *Session) MoveRight() {
	n := s.currentTextLen()
	switch {
	case n > 0 && s.Cursor.Pos < n-1:
		s.Cursor.Pos++
	case !s.Cursor.OnValue:
		s.Cursor.OnValue = true
		s.Cursor.Pos = 0
	default:
		s.ExpandCurrent()
	}
}

// WordForward jumps a whole field: key to value, then value to the next
// row's key.
func (s *Session) WordForward() {
	if !s.Cursor.OnValue {
		s.Cursor.OnValue = true
		s.Cursor.Pos = 0
		return
	}
	s.MoveDown()
	s.Cursor.OnValue = false
	s.Cursor.Pos = 0
}

// WordBackward jumps a whole field in the other direction.
func (s *Session) WordBackward() {
	if s.Cursor.OnValue {
		s.Cursor.OnValue = false
		s.Cursor.Pos = 0
		return
	}
	s.MoveUp()
	s.Cursor.OnValue = true
	s.Cursor.Pos = 0
}

// GoToTop selects row 0.
func (s *Session) GoToTop() {
	s.Cursor.Selected = 0
}

// GoToBottom selects the last row.
func (s *Session) GoToBottom() {
	rows := s.Rows()
	if len(rows) > 0 {
		s.Cursor.Selected = len(rows) - 1
	} else {
		s.Cursor.Selected = 0
	}
}

// PageDown moves the selection down by pageSize, clamped.
func (s *Session) PageDown(pageSize int) {
	rows := s.Rows()
	last := len(rows) - 1
	if last < 0 {
		last = 0
	}
	s.Cursor.Selected += pageSize
	if s.Cursor.Selected > last {
		s.Cursor.Selected = last
	}
}

// PageUp moves the selection up by pageSize, clamped.
func (s *Session) PageUp(pageSize int) {
	s.Cursor.Selected -= pageSize
	if s.Cursor.Selected < 0 {
		s.Cursor.Selected = 0
	}
}

// ToggleExpand flips the expansion flag of the current row's node.
func (s *Session) ToggleExpand() {
	row, ok := s.CurrentRow()
	if !ok || !row.Expandable {
		return
	}
	if n := s.nodeAt(row.Path); n != nil {
		n.Expanded = !n.Expanded
	}
}

// ExpandCurrent expands the current row if it is a collapsed container.
func (s *Session) ExpandCurrent() {
	row, ok := s.CurrentRow()
	if !ok || !row.Expandable || row.Expanded {
		return
	}
	if n := s.nodeAt(row.Path); n != nil {
		n.Expanded = true
	}
}

// CollapseCurrent collapses the current row; if it is already collapsed (or
// a scalar), selection jumps to the parent row instead.
func (s *Session) CollapseCurrent() {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	if row.Expandable && row.Expanded {
		if n := s.nodeAt(row.Path); n != nil {
			n.Expanded = false
		}
		return
	}
	if row.Depth > 0 {
		s.goToParent()
	}
}

// goToParent finds the row whose path is the current path minus its last
// element. A linear scan is fine; projections are small.
func (s *Session) goToParent() {
	rows := s.Rows()
	if s.Cursor.Selected >= len(rows) {
		return
	}
	path := rows[s.Cursor.Selected].Path
	if len(path) == 0 {
		return
	}
	parent := path[:len(path)-1]
	for i, r := range rows {
		if pathsEqual(r.Path, parent) {
			s.Cursor.Selected = i
			return
		}
	}
}

func pathsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CurrentPath renders the selected node's dotted key path for the header,
// excluding the synthetic root key.
func (s *Session) CurrentPath() string {
	row, ok := s.CurrentRow()
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(row.Path))
	current := s.Root
	for _, idx := range row.Path {
		if idx < 0 || idx >= len(current.Children) {
			break
		}
		current = current.Children[idx]
		parts = append(parts, current.Key)
	}
	return strings.Join(parts, ".")
}
