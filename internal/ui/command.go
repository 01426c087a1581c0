package ui

import "fmt"

// ExecuteCommand runs a submitted command-mode buffer, sigil included.
// "/" buffers run a search; ":" buffers use the ex-style grammar: q/quit
// (refused while dirty), q! (force), w/write, wq/x. Returns true when the
// editor should quit.
func (s *Session) ExecuteCommand(buffer string) bool {
	quit := false

	switch {
	case len(buffer) > 0 && buffer[0] == '/':
		s.Search.Query = buffer[1:]
		s.ExecuteSearch()
	case len(buffer) > 0 && buffer[0] == ':':
		cmd := buffer[1:]
		switch cmd {
		case "q", "quit":
			if s.Dirty {
				s.Message = "Unsaved changes! Use :q! to force or :wq to save"
			} else {
				quit = true
			}
		case "q!":
			quit = true
		case "w", "write":
			s.saveWithMessage()
		case "wq", "x":
			if err := s.Save(); err != nil {
				s.Message = fmt.Sprintf("Save failed: %v", err)
			} else {
				quit = true
			}
		default:
			s.Message = fmt.Sprintf("Unknown command: %s", cmd)
		}
	}

	s.State = StateNormal
	return quit
}
