package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/cfged/pkg/settings"
)

func TestWordBounds(t *testing.T) {
	text := []rune("foo_bar baz")

	start, end := wordBounds(text, 2)
	require.Equal(t, 0, start)
	require.Equal(t, 7, end)

	// on the space the span degenerates to the space itself
	start, end = wordBounds(text, 7)
	require.Equal(t, 7, start)
	require.Equal(t, 8, end)

	start, end = wordBounds(text, 9)
	require.Equal(t, 8, start)
	require.Equal(t, 11, end)

	start, end = wordBounds(nil, 0)
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)

	// position past the end clamps to the last character
	start, end = wordBounds([]rune("ab"), 10)
	require.Equal(t, 0, start)
	require.Equal(t, 2, end)
}

func TestStartEditValueSeedsBuffer(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "host")

	s.StartEditValue(true, false)
	require.Equal(t, StateEdit, s.State)
	require.Equal(t, "localhost", string(s.Edit.Buffer))
	require.Equal(t, len("localhost"), s.Edit.Cursor)
	require.False(t, s.Edit.EditingKey)
}

func TestStartEditValueClearIgnoresAtEnd(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "host")

	s.StartEditValue(true, true)
	require.Empty(t, s.Edit.Buffer)
	require.Equal(t, 0, s.Edit.Cursor)
}

func TestStartEditValueRefusesContainers(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "database")

	s.StartEditValue(false, false)
	require.Equal(t, StateNormal, s.State)
	require.Equal(t, "Cannot edit containers directly", s.Message)
}

func TestStartEditKeyRefusesRoot(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = 0

	s.StartEditKey(false)
	require.Equal(t, StateNormal, s.State)
	require.Equal(t, "Cannot rename root", s.Message)
}

func TestApplyEditRenamesKey(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "name")

	s.StartEditKey(false)
	s.Edit.Buffer = []rune("title")
	s.ApplyEdit()

	require.True(t, s.Dirty)
	require.Equal(t, "Key renamed (unsaved)", s.Message)
	require.Equal(t, StateNormal, s.State)
	require.NotEqual(t, -1, rowIndexByKey(s, "title"))
	require.Equal(t, -1, rowIndexByKey(s, "name"))
}

func TestApplyEditRetypesValue(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	idx := rowIndexByKey(s, "host")
	s.Cursor.Selected = idx

	s.StartEditValue(false, true)
	s.Edit.Buffer = []rune("42")
	s.ApplyEdit()

	require.Equal(t, "num", s.Rows()[idx].Type)
	require.Equal(t, "Value updated (unsaved)", s.Message)
	require.True(t, s.Dirty)
}

func TestCancelEditLeavesTreeAlone(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	idx := rowIndexByKey(s, "host")
	s.Cursor.Selected = idx

	s.StartEditValue(false, false)
	s.Edit.Buffer = []rune("changed")
	s.CancelEdit()

	require.Equal(t, StateNormal, s.State)
	require.False(t, s.Dirty)
	require.Equal(t, "Edit cancelled", s.Message)
	require.Equal(t, `"localhost"`, s.Rows()[idx].Preview)
}

func TestStartEditWordQuoteOffset(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "host")
	s.Cursor.OnValue = true
	// preview is "localhost" with quotes; column 1 is the first 'l'
	s.Cursor.Pos = 1

	s.StartEditWord(false)
	require.Equal(t, StateEdit, s.State)
	require.Equal(t, "localhost", string(s.Edit.Buffer))
	require.True(t, s.Edit.HasWord)
	require.Equal(t, 0, s.Edit.WordStart)
	require.Equal(t, 9, s.Edit.WordEnd)
}

func TestWordEditCommitSplicesSpan(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	idx := rowIndexByKey(s, "host")
	s.Cursor.Selected = idx
	if n := s.nodeAt(s.Rows()[idx].Path); n != nil {
		n.SetScalarFromString("foo bar baz")
	}
	s.Cursor.OnValue = true
	s.Cursor.Pos = 5 // inside "bar" after the quote offset

	s.StartEditWord(true)
	require.Empty(t, s.Edit.Buffer)
	s.Edit.Buffer = []rune("qux")
	s.ApplyEdit()

	require.Equal(t, `"foo qux baz"`, s.Rows()[idx].Preview)
}

func TestDeleteWordTrimsRemainder(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	idx := rowIndexByKey(s, "host")
	s.Cursor.Selected = idx
	if n := s.nodeAt(s.Rows()[idx].Path); n != nil {
		n.SetScalarFromString("foo bar")
	}
	s.Cursor.OnValue = true
	s.Cursor.Pos = 6 // on "bar" (offset for the quote)

	s.DeleteWord()
	require.Equal(t, `"foo"`, s.Rows()[idx].Preview)
	require.True(t, s.Dirty)
	require.Equal(t, "Word deleted (unsaved)", s.Message)
}

func TestDeleteWordRefusedOnKey(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "host")
	s.Cursor.OnValue = false

	s.DeleteWord()
	require.Equal(t, "Cannot delete part of key", s.Message)
	require.False(t, s.Dirty)
}

func TestClearValueSetsNull(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	idx := rowIndexByKey(s, "debug")
	s.Cursor.Selected = idx

	s.ClearValue()
	require.Equal(t, "null", s.Rows()[idx].Type)
	require.True(t, s.Dirty)
}

func TestClearValueRefusesContainers(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "items")

	s.ClearValue()
	require.Equal(t, "Cannot clear containers", s.Message)
	require.False(t, s.Dirty)
}

func TestDeleteCurrentRenumbersArray(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "[1]")

	s.DeleteCurrent()
	require.True(t, s.Dirty)

	itemsIdx := rowIndexByKey(s, "items")
	rows := s.Rows()
	require.Equal(t, "[0]", rows[itemsIdx+1].Key)
	require.Equal(t, `"a"`, rows[itemsIdx+1].Preview)
	require.Equal(t, "[1]", rows[itemsIdx+2].Key)
	require.Equal(t, `"c"`, rows[itemsIdx+2].Preview)
}

func TestDeleteCurrentRefusesRoot(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = 0

	s.DeleteCurrent()
	require.Equal(t, "Cannot delete root", s.Message)
	require.False(t, s.Dirty)
}

func TestDeleteCurrentClampsSelection(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.GoToBottom()
	last := s.Cursor.Selected

	s.DeleteCurrent()
	require.Equal(t, last-1, s.Cursor.Selected)
	require.Less(t, s.Cursor.Selected, len(s.Rows()))
}

func TestAddNewKeyToObject(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "database")

	s.AddNewKey()
	require.True(t, s.Dirty)
	require.NotEqual(t, -1, rowIndexByKey(s, "new_key"))
}

func TestAddNewKeyToArrayAppendsIndex(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "items")

	s.AddNewKey()
	idx := rowIndexByKey(s, "[3]")
	require.NotEqual(t, -1, idx)
	require.Equal(t, `"value"`, s.Rows()[idx].Preview)
}

func TestAddNewKeyRefusedOnScalar(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "debug")

	s.AddNewKey()
	require.Equal(t, "Can only add to objects/arrays", s.Message)
	require.False(t, s.Dirty)
}

func TestSaveWritesSingleScalarAtEmptyPath(t *testing.T) {
	b := &fakeBackend{}
	s := NewSession(map[string]interface{}{"only": "hello"}, "app.json", "/tmp/app.json", settings.ModeVim, b)
	s.Dirty = true

	require.NoError(t, s.Save())
	require.False(t, s.Dirty)
	require.Equal(t, "Saved", s.Message)
	require.Len(t, b.sets, 1)
	require.Equal(t, "/tmp/app.json", b.sets[0].locator)
	require.Equal(t, "", b.sets[0].keyPath)
	require.Equal(t, "hello", b.sets[0].value)
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	b := &fakeBackend{setErr: errors.New("disk full")}
	s := NewSession(map[string]interface{}{"only": "hello"}, "app.json", "/tmp/app.json", settings.ModeVim, b)
	s.Dirty = true

	s.saveWithMessage()
	require.True(t, s.Dirty)
	require.Equal(t, "Save failed: disk full", s.Message)
}

func TestFormatScalarText(t *testing.T) {
	require.Equal(t, "null", formatScalarText(nil))
	require.Equal(t, "true", formatScalarText(true))
	require.Equal(t, "42", formatScalarText(int64(42)))
	require.Equal(t, "2.5", formatScalarText(2.5))
	require.Equal(t, "x", formatScalarText("x"))
	require.Equal(t, "", formatScalarText([]interface{}{1}))
	require.Equal(t, "", formatScalarText(map[string]interface{}{}))
}

func TestEditTargetKeySide(t *testing.T) {
	s, _ := newTestSession(settings.ModeVim)
	s.Cursor.Selected = rowIndexByKey(s, "host")
	s.Cursor.OnValue = false

	row, ok := s.CurrentRow()
	require.True(t, ok)
	text, isKey, offset, ok := s.editTarget(row)
	require.True(t, ok)
	require.True(t, isKey)
	require.Equal(t, 0, offset)
	require.Equal(t, "host", text)
}
