package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/oakwood-commons/cfged/internal/tree"
)

// StartEditValue opens a whole-field edit on the current row's value.
// atEnd places the cursor after the last character; clear starts from an
// empty buffer. Containers cannot be edited in place.
func (s *Session) StartEditValue(atEnd, clear bool) {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	if !row.Editable {
		s.Message = "Cannot edit containers directly"
		return
	}
	node := s.nodeAt(row.Path)
	if node == nil {
		return
	}
	val, ok := node.EditableValue()
	if !ok {
		return
	}
	text := val
	if clear {
		text = ""
	}
	s.Edit.Start(text, atEnd && !clear, false)
	s.State = StateEdit
}

// StartEditKey opens a whole-field edit on the current row's key. The root
// cannot be renamed.
func (s *Session) StartEditKey(clear bool) {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	if len(row.Path) == 0 {
		s.Message = "Cannot rename root"
		return
	}
	text := row.Key
	if clear {
		text = ""
	}
	s.Edit.Start(text, true, true)
	s.State = StateEdit
}

// wordBounds finds the maximal run of word characters (alphanumeric or
// underscore) around pos. If pos lands on a non-word character the span
// degenerates to that single character.
func wordBounds(text []rune, pos int) (int, int) {
	if len(text) == 0 {
		return 0, 0
	}
	if pos > len(text)-1 {
		pos = len(text) - 1
	}
	isWord := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}
	if !isWord(text[pos]) {
		return pos, pos + 1
	}
	start := pos
	for start > 0 && isWord(text[start-1]) {
		start--
	}
	end := pos
	for end < len(text) && isWord(text[end]) {
		end++
	}
	return start, end
}

// editTarget resolves the text a word-level operation applies to: the value
// (with a one-column offset when the preview is quoted) or the key.
func (s *Session) editTarget(row tree.Row) (text string, isKey bool, offset int, ok bool) {
	if s.Cursor.OnValue {
		if !row.Editable {
			s.Message = "Cannot edit containers directly"
			return "", false, 0, false
		}
		node := s.nodeAt(row.Path)
		if node == nil {
			return "", false, 0, false
		}
		val, has := node.EditableValue()
		if !has {
			return "", false, 0, false
		}
		// The opening quote of a string preview occupies one display column.
		if row.Type == "str" {
			offset = 1
		}
		return val, false, offset, true
	}
	if len(row.Path) == 0 {
		s.Message = "Cannot rename root"
		return "", false, 0, false
	}
	return row.Key, true, 0, true
}

// StartEditWord opens a word-level edit on the word under the cursor.
func (s *Session) StartEditWord(clear bool) {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	text, isKey, offset, ok := s.editTarget(row)
	if !ok {
		return
	}

	pos := s.Cursor.Pos - offset
	if pos < 0 {
		pos = 0
	}
	runes := []rune(text)
	start, end := wordBounds(runes, pos)
	word := string(runes[start:end])
	if clear {
		word = ""
	}
	s.Edit.StartWord(text, word, start, end, isKey)
	s.State = StateEdit
}

// ApplyEdit commits the edit buffer into the tree: a key rename or a value
// rewrite with scalar re-inference. Marks the document dirty.
func (s *Session) ApplyEdit() {
	row, ok := s.CurrentRow()
	if ok {
		if node := s.nodeAt(row.Path); node != nil {
			final := s.Edit.FinalValue()
			if s.Edit.EditingKey {
				node.Key = final
				s.Message = "Key renamed (unsaved)"
			} else {
				node.SetScalarFromString(final)
				s.Message = "Value updated (unsaved)"
			}
			s.Dirty = true
		}
	}
	s.State = StateNormal
	s.Edit.Clear()
}

// CancelEdit discards the edit without touching the tree.
func (s *Session) CancelEdit() {
	s.State = StateNormal
	s.Edit.Clear()
	s.Message = "Edit cancelled"
}

// DeleteWord removes the word under the cursor from the current value.
// Only values can be word-deleted; a key is renamed whole or not at all.
func (s *Session) DeleteWord() {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	if !s.Cursor.OnValue {
		s.Message = "Cannot delete part of key"
		return
	}
	if !row.Editable {
		s.Message = "Cannot edit containers"
		return
	}
	node := s.nodeAt(row.Path)
	if node == nil {
		return
	}
	val, has := node.EditableValue()
	if !has {
		return
	}
	offset := 0
	if row.Type == "str" {
		offset = 1
	}

	pos := s.Cursor.Pos - offset
	if pos < 0 {
		pos = 0
	}
	runes := []rune(val)
	start, end := wordBounds(runes, pos)
	remainder := strings.TrimSpace(string(runes[:start]) + string(runes[end:]))

	node.SetScalarFromString(remainder)
	s.Dirty = true
	s.Message = "Word deleted (unsaved)"
}

// ClearValue resets the current value to null.
func (s *Session) ClearValue() {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	if !row.Editable {
		s.Message = "Cannot clear containers"
		return
	}
	if node := s.nodeAt(row.Path); node != nil {
		node.SetScalarFromString("null")
		s.Dirty = true
		s.Message = "Value cleared (unsaved)"
	}
}

// DeleteCurrent removes the selected entry from its parent and clamps the
// selection to the shrunken projection.
func (s *Session) DeleteCurrent() {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	if len(row.Path) == 0 {
		s.Message = "Cannot delete root"
		return
	}

	parent := s.nodeAt(row.Path[:len(row.Path)-1])
	if parent == nil {
		return
	}
	if parent.RemoveChild(row.Path[len(row.Path)-1]) {
		s.Dirty = true
		s.Message = "Deleted (unsaved)"

		rows := s.Rows()
		if s.Cursor.Selected >= len(rows) {
			s.Cursor.Selected = len(rows) - 1
			if s.Cursor.Selected < 0 {
				s.Cursor.Selected = 0
			}
		}
	}
}

// AddNewKey appends a child to the selected container (expanding it first)
// with a placeholder string value. Objects get the key "new_key" to rename;
// arrays get the next index.
func (s *Session) AddNewKey() {
	row, ok := s.CurrentRow()
	if !ok {
		return
	}
	target := s.nodeAt(row.Path)
	if target == nil {
		return
	}
	if !target.Expandable() {
		s.Message = "Can only add to objects/arrays"
		return
	}
	target.Expanded = true
	key := "new_key"
	if target.Kind == tree.Array {
		key = ""
	}
	target.AddChild(&tree.Node{Key: key, Kind: tree.String, Scalar: "value"})
	s.Dirty = true
	s.Message = "Added new key (unsaved)"
}

// Save writes the document through the backend and clears the dirty flag.
//
// Known limitation, kept for compatibility with existing behavior: when the
// root is an object, only one top-level entry (map iteration order, so
// effectively arbitrary) is serialized, as a scalar, to the empty key path.
// Nested structure and the remaining entries are not written.
func (s *Session) Save() error {
	value := s.Root.ToValue()
	if obj, ok := value.(map[string]interface{}); ok {
		for _, v := range obj {
			if err := s.Backend.Set(s.ResolvedPath, "", formatScalarText(v)); err != nil {
				return err
			}
			break
		}
	}
	s.Dirty = false
	s.Message = "Saved"
	return nil
}

// formatScalarText renders a scalar value as bare text; non-scalars render
// as the empty string.
func formatScalarText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	default:
		return ""
	}
}

// saveWithMessage runs Save and funnels any failure into the message slot.
func (s *Session) saveWithMessage() {
	if err := s.Save(); err != nil {
		s.Message = fmt.Sprintf("Save failed: %v", err)
	}
}
