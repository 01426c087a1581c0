package ui

import (
	"fmt"
	"strings"
)

// ExecuteSearch rebuilds the result set from scratch: a case-insensitive
// substring scan over every visible row's key and value preview. A hit list
// jumps the selection to the first match immediately.
func (s *Session) ExecuteSearch() {
	s.Search.Clear()
	if s.Search.Query == "" {
		return
	}

	query := strings.ToLower(s.Search.Query)
	for i, row := range s.Rows() {
		if strings.Contains(strings.ToLower(row.Key), query) ||
			strings.Contains(strings.ToLower(row.Preview), query) {
			s.Search.Results = append(s.Search.Results, i)
		}
	}

	if len(s.Search.Results) > 0 {
		s.Cursor.Selected = s.Search.Results[0]
		s.Message = fmt.Sprintf("Found %d match(es)", len(s.Search.Results))
	} else {
		s.Message = "No matches found"
	}
}

// NextMatch cycles the selection forward through stored results.
func (s *Session) NextMatch() {
	if idx, ok := s.Search.Next(); ok {
		s.Cursor.Selected = clampRow(idx, len(s.Rows()))
	}
}

// PrevMatch cycles the selection backward through stored results.
func (s *Session) PrevMatch() {
	if idx, ok := s.Search.Prev(); ok {
		s.Cursor.Selected = clampRow(idx, len(s.Rows()))
	}
}

// clampRow guards stored result indices against a projection that shrank
// since the scan, such as a container collapsed after searching.
func clampRow(idx, n int) int {
	if n == 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
