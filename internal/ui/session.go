// Package ui implements the interactive tree editor: a modal input state
// machine over a single document session, rendered with Bubble Tea.
package ui

import (
	"github.com/oakwood-commons/cfged/internal/backend"
	"github.com/oakwood-commons/cfged/internal/tree"
	"github.com/oakwood-commons/cfged/pkg/settings"
)

// UIState selects which input handler receives the next key.
type UIState int

const (
	StateNormal UIState = iota
	StateCommand
	StateEdit
)

// Cursor tracks the selected row and the intra-row text cursor. OnValue
// chooses whether the cursor sits on the row's value preview or its key.
type Cursor struct {
	Selected     int
	OnValue      bool
	Pos          int
	ScrollOffset int
}

// NewCursor starts on the value side of row 0.
func NewCursor() Cursor {
	return Cursor{OnValue: true}
}

// ResetPos moves the intra-row cursor back to column 0.
func (c *Cursor) ResetPos() {
	c.Pos = 0
}

// EditState is an isolated text-editing session. Word-level edits remember
// the span of the original text the buffer replaces; whole-field edits use
// the buffer verbatim on commit.
type EditState struct {
	Buffer     []rune
	Cursor     int
	EditingKey bool
	HasWord    bool
	WordStart  int
	WordEnd    int
	Original   []rune
}

// Clear discards all edit state.
func (e *EditState) Clear() {
	e.Buffer = nil
	e.Original = nil
	e.HasWord = false
	e.WordStart = 0
	e.WordEnd = 0
	e.EditingKey = false
	e.Cursor = 0
}

// Start begins a whole-field edit seeded with text.
func (e *EditState) Start(text string, atEnd, isKey bool) {
	e.Buffer = []rune(text)
	e.Cursor = 0
	if atEnd {
		e.Cursor = len(e.Buffer)
	}
	e.EditingKey = isKey
	e.HasWord = false
	e.Original = nil
}

// StartWord begins a word-level edit: buffer holds the word, original holds
// the full text it will be spliced back into at [start, end).
func (e *EditState) StartWord(original, word string, start, end int, isKey bool) {
	e.Original = []rune(original)
	e.Buffer = []rune(word)
	e.HasWord = true
	e.WordStart = start
	e.WordEnd = end
	e.Cursor = 0
	e.EditingKey = isKey
}

// Insert places r at the cursor.
func (e *EditState) Insert(r rune) {
	e.Buffer = append(e.Buffer[:e.Cursor], append([]rune{r}, e.Buffer[e.Cursor:]...)...)
	e.Cursor++
}

// Backspace removes the rune before the cursor.
func (e *EditState) Backspace() {
	if e.Cursor > 0 {
		e.Cursor--
		e.Buffer = append(e.Buffer[:e.Cursor], e.Buffer[e.Cursor+1:]...)
	}
}

// Delete removes the rune under the cursor.
func (e *EditState) Delete() {
	if e.Cursor < len(e.Buffer) {
		e.Buffer = append(e.Buffer[:e.Cursor], e.Buffer[e.Cursor+1:]...)
	}
}

// FinalValue resolves the edit to the text that will be committed: the
// buffer spliced into the original at the word range, or the buffer alone.
func (e *EditState) FinalValue() string {
	if !e.HasWord {
		return string(e.Buffer)
	}
	out := make([]rune, 0, len(e.Original)+len(e.Buffer))
	out = append(out, e.Original[:e.WordStart]...)
	out = append(out, e.Buffer...)
	out = append(out, e.Original[e.WordEnd:]...)
	return string(out)
}

// SearchState holds the most recent search submission. Results are row
// indices into the projection the scan ran against; next/prev cycle them
// circularly without re-scanning.
type SearchState struct {
	Query   string
	Results []int
	Index   int
}

// Clear drops the results but keeps the query text.
func (s *SearchState) Clear() {
	s.Results = nil
	s.Index = 0
}

// Next advances circularly through the results.
func (s *SearchState) Next() (int, bool) {
	if len(s.Results) == 0 {
		return 0, false
	}
	s.Index = (s.Index + 1) % len(s.Results)
	return s.Results[s.Index], true
}

// Prev steps back circularly through the results.
func (s *SearchState) Prev() (int, bool) {
	if len(s.Results) == 0 {
		return 0, false
	}
	if s.Index == 0 {
		s.Index = len(s.Results) - 1
	} else {
		s.Index--
	}
	return s.Results[s.Index], true
}

// OperatorState is the operator-pending sub-machine of the vim keymap: an
// armed operator plus the motion characters accumulated so far. Pending is 0
// when no operator is armed.
type OperatorState struct {
	Pending rune
	Motion  string
}

// Set arms op and clears any accumulated motion.
func (o *OperatorState) Set(op rune) {
	o.Pending = op
	o.Motion = ""
}

// Clear disarms the operator.
func (o *OperatorState) Clear() {
	o.Pending = 0
	o.Motion = ""
}

// PushMotion appends one motion character.
func (o *OperatorState) PushMotion(r rune) {
	o.Motion += string(r)
}

// Session is the single editor session: the document tree plus every piece
// of interaction state. There is exactly one per running editor and it is
// only touched from the update loop, so no locking is involved.
type Session struct {
	Root     *tree.Node
	Cursor   Cursor
	Edit     EditState
	Search   SearchState
	Operator OperatorState
	State    UIState

	FilePath     string
	ResolvedPath string
	Mode         settings.InputMode
	Backend      backend.Backend

	ShowHelp bool
	Dirty    bool

	// CommandSigil is the '/' or ':' that opened command mode; the model
	// seeds its line input with it.
	CommandSigil rune

	// QuitWarned is set after a quit attempt was refused for unsaved
	// changes in the basic keymap; the next attempt goes through.
	QuitWarned bool

	// Message is the single transient status slot, overwritten each input
	// cycle. Only the most recent condition is ever visible.
	Message string
}

// NewSession builds a session from a loaded document value.
func NewSession(value interface{}, filePath, resolvedPath string, mode settings.InputMode, b backend.Backend) *Session {
	return &Session{
		Root:         tree.FromValue("root", value, 0),
		Cursor:       NewCursor(),
		State:        StateNormal,
		FilePath:     filePath,
		ResolvedPath: resolvedPath,
		Mode:         mode,
		Backend:      b,
	}
}

// Rows recomputes the visible projection. Never cached: structural edits
// and expand/collapse invalidate any previously computed row list.
func (s *Session) Rows() []tree.Row {
	return tree.Flatten(s.Root)
}

// CurrentRow returns the row under the cursor, if any.
func (s *Session) CurrentRow() (tree.Row, bool) {
	rows := s.Rows()
	if s.Cursor.Selected < 0 || s.Cursor.Selected >= len(rows) {
		return tree.Row{}, false
	}
	return rows[s.Cursor.Selected], true
}

// nodeAt resolves a projection path against the current tree. Paths are
// always taken from a projection computed in the same input step, so a
// failure here is a caller bug; it is surfaced as a message rather than a
// panic so the loop survives.
func (s *Session) nodeAt(path []int) *tree.Node {
	n, err := s.Root.At(path)
	if err != nil {
		s.Message = err.Error()
		return nil
	}
	return n
}
