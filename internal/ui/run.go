package ui

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/cfged/internal/backend"
	"github.com/oakwood-commons/cfged/pkg/settings"
)

// Run loads the document through the backend and drives the interactive
// editor until the user quits. Load and info failures are fatal here; once
// the loop is running every error is recovered into the status line.
// Width/height of 0 auto-detect the terminal size. Extra ProgramOptions
// (e.g. custom IO for tests) mirror tea.NewProgram.
func Run(locator string, b backend.Backend, mode settings.InputMode, width, height int, noColor bool, opts ...tea.ProgramOption) error {
	value, err := b.Load(locator)
	if err != nil {
		return fmt.Errorf("load %s: %w", locator, err)
	}
	info, err := b.Info(locator)
	if err != nil {
		return fmt.Errorf("info %s: %w", locator, err)
	}

	s := NewSession(value, locator, info.Path, mode, b)
	m := NewModel(s, noColor)

	if width > 0 || height > 0 {
		if width <= 0 || height <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if width <= 0 {
					width = w
				}
				if height <= 0 {
					height = h
				}
			}
		}
		if width <= 0 {
			width = 80
		}
		if height <= 0 {
			height = 24
		}
		m.width = width
		m.height = height
		opts = append(opts, tea.WithWindowSize(width, height))
	}

	prog := tea.NewProgram(m, opts...)
	_, err = prog.Run()
	return err
}
