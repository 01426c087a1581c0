// Package settings provides build metadata and user-level editor settings
// shared across the cfged CLI and TUI packages.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "cfged"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputMode selects which keybinding scheme the interactive editor uses.
type InputMode string

const (
	// ModeVim enables the modal operator+motion scheme (j/k/h/l, ciw, dd, ...).
	ModeVim InputMode = "vim"
	// ModeBasic enables the linear scheme (arrow keys, Enter, Delete, ...).
	ModeBasic InputMode = "basic"
)

// DefaultInputMode is used when no settings file or flag selects a mode.
const DefaultInputMode = ModeVim

// ParseInputMode maps a user-supplied mode string to an InputMode.
// Unknown values fall back to the default rather than failing: a broken
// settings file should never keep the editor from starting.
func ParseInputMode(s string) InputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return ModeBasic
	case "vi", "vim":
		return ModeVim
	default:
		return DefaultInputMode
	}
}

// Settings holds the user-level editor configuration read from the cfged
// settings file.
type Settings struct {
	Mode  InputMode `yaml:"mode"`
	Theme string    `yaml:"theme"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{Mode: DefaultInputMode}
}

// SettingsPath returns the resolved settings file path, or "" when none
// exists. Resolution order: explicit path, $XDG_CONFIG_HOME/cfged/config.yaml,
// ~/.config/cfged/config.yaml.
func SettingsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// Load reads the settings file at path. An empty path or a missing file yields
// the defaults; a malformed file is reported so the CLI can warn.
func Load(path string) (Settings, error) {
	cfg := DefaultSettings()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read settings: %w", err)
	}
	var file struct {
		Mode  string `yaml:"mode"`
		Theme string `yaml:"theme"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("decode settings: %w", err)
	}
	if file.Mode != "" {
		cfg.Mode = ParseInputMode(file.Mode)
	}
	cfg.Theme = strings.TrimSpace(file.Theme)
	return cfg, nil
}
