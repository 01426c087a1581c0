package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the editor UI.
type Theme struct {
	KeyColor      color.Color // unselected row keys
	SelectedColor color.Color // key/value text on the selected row
	CursorFG      color.Color // block cursor foreground
	CursorBG      color.Color // block cursor background

	StringColor    color.Color // str values
	NumberColor    color.Color // num values
	BoolColor      color.Color // bool values
	NullColor      color.Color // null values
	ContainerColor color.Color // array/object summaries

	TypeColor       color.Color // trailing (type) tag
	SeparatorColor  color.Color // ": " separators and expand markers
	MatchColor      color.Color // search match highlight
	MessageColor    color.Color // transient status messages
	EditColor       color.Color // active edit buffer text
	EditCursorColor color.Color // edit-mode cursor bar
	InsertColor     color.Color // "-- INSERT --" indicator

	HeaderFile color.Color // file name in the header
	HeaderPath color.Color // dotted path in the header
	DirtyColor color.Color // the [+] dirty marker
	BrandFG    color.Color // brand chip text
	BrandBG    color.Color // brand chip background

	HelpBorder  color.Color // help overlay border
	HelpKey     color.Color // key column in the help overlay
	HelpSection color.Color // section rules in the help overlay
}

var themePresets = map[string]Theme{
	"dark":  darkTheme(),
	"light": lightTheme(),
}

var (
	currentTheme Theme
	themeSet     bool
)

func darkTheme() Theme {
	return Theme{
		KeyColor:      lipgloss.Color("7"),
		SelectedColor: lipgloss.Color("6"),
		CursorFG:      lipgloss.Color("0"),
		CursorBG:      lipgloss.Color("6"),

		StringColor:    lipgloss.Color("2"),
		NumberColor:    lipgloss.Color("3"),
		BoolColor:      lipgloss.Color("5"),
		NullColor:      lipgloss.Color("8"),
		ContainerColor: lipgloss.Color("4"),

		TypeColor:       lipgloss.Color("8"),
		SeparatorColor:  lipgloss.Color("8"),
		MatchColor:      lipgloss.Color("3"),
		MessageColor:    lipgloss.Color("3"),
		EditColor:       lipgloss.Color("2"),
		EditCursorColor: lipgloss.Color("6"),
		InsertColor:     lipgloss.Color("6"),

		HeaderFile: lipgloss.Color("4"),
		HeaderPath: lipgloss.Color("8"),
		DirtyColor: lipgloss.Color("3"),
		BrandFG:    lipgloss.Color("0"),
		BrandBG:    lipgloss.Color("15"),

		HelpBorder:  lipgloss.Color("3"),
		HelpKey:     lipgloss.Color("6"),
		HelpSection: lipgloss.Color("8"),
	}
}

func lightTheme() Theme {
	th := darkTheme()
	th.KeyColor = lipgloss.Color("0")
	th.SelectedColor = lipgloss.Color("4")
	th.CursorBG = lipgloss.Color("4")
	th.CursorFG = lipgloss.Color("15")
	th.NullColor = lipgloss.Color("7")
	th.TypeColor = lipgloss.Color("7")
	th.SeparatorColor = lipgloss.Color("7")
	th.HeaderPath = lipgloss.Color("7")
	th.HelpSection = lipgloss.Color("7")
	th.BrandFG = lipgloss.Color("15")
	th.BrandBG = lipgloss.Color("0")
	return th
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return darkTheme()
}

// SetTheme overrides the active theme.
func SetTheme(t Theme) {
	currentTheme = t
	themeSet = true
}

// SetThemeByName activates a named preset.
func SetThemeByName(name string) error {
	th, ok := themePresets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, availableThemeNames())
	}
	SetTheme(th)
	return nil
}

// CurrentTheme returns the active theme, defaulting to dark.
func CurrentTheme() Theme {
	if !themeSet {
		currentTheme = DefaultTheme()
		themeSet = true
	}
	return currentTheme
}

func availableThemeNames() string {
	names := make([]string, 0, len(themePresets))
	for name := range themePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
