package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/oakwood-commons/cfged/pkg/settings"
)

const pageSize = 10

// HandleKey routes one key press (Bubble Tea key string form) through the
// active UI state and keymap. Returns true when the editor should quit.
func HandleKey(s *Session, key string) bool {
	switch s.State {
	case StateEdit:
		handleEditKey(s, key)
		return false
	case StateCommand:
		// Command-mode text entry is owned by the model's line input; only
		// submission and dismissal arrive here.
		return false
	default:
		if s.Mode == settings.ModeBasic {
			return handleBasicNormal(s, key)
		}
		return handleVimNormal(s, key)
	}
}

func handleEditKey(s *Session, key string) {
	switch key {
	case "enter":
		s.ApplyEdit()
	case "esc":
		s.CancelEdit()
	case "backspace":
		s.Edit.Backspace()
	case "delete":
		s.Edit.Delete()
	case "left":
		if s.Edit.Cursor > 0 {
			s.Edit.Cursor--
		}
	case "right":
		if s.Edit.Cursor < len(s.Edit.Buffer) {
			s.Edit.Cursor++
		}
	case "home":
		s.Edit.Cursor = 0
	case "end":
		s.Edit.Cursor = len(s.Edit.Buffer)
	case "space":
		s.Edit.Insert(' ')
	default:
		if r, ok := keyRune(key); ok {
			s.Edit.Insert(r)
		}
	}
}

// handleVimNormal is the modal keymap: single-key motions plus the
// operator-pending sub-machine for c/d compound commands.
func handleVimNormal(s *Session, key string) bool {
	if s.Operator.Pending != 0 {
		handlePendingOperator(s, key)
		return false
	}

	switch key {
	case "j":
		s.MoveDown()
	case "k":
		s.MoveUp()
	case "l":
		s.MoveRight()
	case "h":
		s.MoveLeft()
	case "w":
		s.WordForward()
	case "b":
		s.WordBackward()
	case "space":
		s.ToggleExpand()
	case "g":
		s.GoToTop()
	case "G":
		s.GoToBottom()
	case "/":
		s.StartCommand('/')
	case ":":
		s.StartCommand(':')
	case "n":
		s.NextMatch()
	case "N":
		s.PrevMatch()
	case "?":
		s.ShowHelp = !s.ShowHelp
	case "ctrl+d":
		s.PageDown(pageSize)
	case "ctrl+u":
		s.PageUp(pageSize)
	case "i":
		s.StartEditValue(false, false)
	case "a":
		s.StartEditValue(true, false)
	case "c":
		s.Operator.Set('c')
	case "d":
		s.Operator.Set('d')
	case "o":
		s.AddNewKey()
	case "esc":
		// One idempotent calm-down: no pending operator, no help, no
		// highlighted matches.
		s.ShowHelp = false
		s.Search.Clear()
		s.Operator.Clear()
	}
	return false
}

// handlePendingOperator accumulates motion characters until the
// (operator, motion) pair completes or is rejected.
func handlePendingOperator(s *Session, key string) {
	if key == "esc" {
		s.Operator.Clear()
		return
	}
	r, ok := keyRune(key)
	if !ok {
		return
	}
	s.Operator.PushMotion(r)
	motion := s.Operator.Motion

	switch motion {
	case "d", "w", "p", "iw", "aw", "ip", "ap":
		executeOperator(s, s.Operator.Pending, motion)
		s.Operator.Clear()
	default:
		if len([]rune(motion)) >= 2 {
			s.Message = fmt.Sprintf("Unknown motion: %s", motion)
			s.Operator.Clear()
		}
	}
}

func executeOperator(s *Session, op rune, motion string) {
	word := motion == "iw" || motion == "aw" || motion == "w"
	para := motion == "ip" || motion == "ap" || motion == "p"

	switch {
	case op == 'c' && word:
		s.StartEditWord(true)
	case op == 'c' && para:
		if s.Cursor.OnValue {
			s.StartEditValue(false, true)
		} else {
			s.StartEditKey(true)
		}
	case op == 'd' && motion == "d":
		s.DeleteCurrent()
	case op == 'd' && word:
		s.DeleteWord()
	case op == 'd' && para:
		if s.Cursor.OnValue {
			s.ClearValue()
		} else {
			s.Message = "Use dd to delete entry"
		}
	default:
		s.Message = fmt.Sprintf("Unknown: %c%s", op, motion)
	}
}

// handleBasicNormal is the linear keymap: every key is a complete command.
func handleBasicNormal(s *Session, key string) bool {
	if key != "esc" {
		s.QuitWarned = false
	}
	switch key {
	case "esc":
		if s.Dirty && !s.QuitWarned {
			s.QuitWarned = true
			s.Message = "Unsaved changes! Press Esc again or Ctrl+S to save"
			return false
		}
		return true
	case "down":
		s.MoveDown()
	case "up":
		s.MoveUp()
	case "right":
		s.ExpandCurrent()
	case "left":
		s.CollapseCurrent()
	case "enter":
		if row, ok := s.CurrentRow(); ok {
			if row.Editable {
				s.StartEditValue(true, false)
			} else {
				s.ToggleExpand()
			}
		}
	case "home":
		s.GoToTop()
	case "end":
		s.GoToBottom()
	case "pgdown":
		s.PageDown(pageSize)
	case "pgup":
		s.PageUp(pageSize)
	case "ctrl+f":
		s.StartCommand('/')
	case "ctrl+s":
		s.saveWithMessage()
	case "delete":
		s.DeleteCurrent()
	case "insert":
		s.AddNewKey()
	case "f3":
		s.NextMatch()
	case "f1":
		s.ShowHelp = !s.ShowHelp
	}
	return false
}

// StartCommand switches into command mode with the given sigil. The model
// picks the sigil up to seed its line input.
func (s *Session) StartCommand(sigil rune) {
	s.State = StateCommand
	s.CommandSigil = sigil
}

// keyRune extracts the literal rune from a single-character key string.
func keyRune(key string) (rune, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r, true
}
