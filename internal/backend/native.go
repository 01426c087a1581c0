package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/cfged/pkg/loader"
)

// resolveExtensions are tried, in order, when a locator is a bare name.
var resolveExtensions = []string{"json", "yaml", "yml", "toml"}

// Native is the built-in backend: local files, formats handled in-process.
type Native struct {
	searchPaths []string
}

// NewNative constructs a Native backend with the standard search paths:
// the working directory, $XDG_CONFIG_HOME (or ~/.config), and /etc.
func NewNative() *Native {
	paths := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, xdg)
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config"))
	}
	paths = append(paths, "/etc")
	return &Native{searchPaths: paths}
}

// SearchPaths lists the directories consulted when resolving bare names.
func (b *Native) SearchPaths() []string {
	return append([]string(nil), b.searchPaths...)
}

// Resolve maps a locator to an existing file path. An explicit existing path
// wins; otherwise each search path is probed with each known extension.
func (b *Native) Resolve(locator string) (string, error) {
	if st, err := os.Stat(locator); err == nil && !st.IsDir() {
		return locator, nil
	}
	for _, dir := range b.searchPaths {
		for _, ext := range resolveExtensions {
			candidate := filepath.Join(dir, locator+"."+ext)
			if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, locator)
}

// Load resolves and parses a document.
func (b *Native) Load(locator string) (interface{}, error) {
	resolved, err := b.Resolve(locator)
	if err != nil {
		return nil, err
	}
	value, err := loader.LoadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, resolved, err)
	}
	return value, nil
}

// Get returns the value at a dotted key path.
func (b *Native) Get(locator, keyPath string) (interface{}, bool, error) {
	doc, err := b.Load(locator)
	if err != nil {
		return nil, false, err
	}
	if keyPath == "" {
		return doc, true, nil
	}
	current := doc
	for _, part := range strings.Split(keyPath, ".") {
		next, ok := descend(current, part)
		if !ok {
			return nil, false, nil
		}
		current = next
	}
	return current, true, nil
}

// descend walks one path segment into an object or array.
func descend(value interface{}, part string) (interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		child, ok := v[part]
		return child, ok
	case []interface{}:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= len(v) {
			return nil, false
		}
		return v[idx], true
	default:
		return nil, false
	}
}

// Set writes a scalar at the dotted key path and rewrites the document.
// An empty key path addresses the empty-string key on the root object, which
// mirrors splitting "" into one empty segment; the interactive save path
// relies on this.
func (b *Native) Set(locator, keyPath, value string) error {
	resolved, err := b.Resolve(locator)
	if err != nil {
		return err
	}
	doc, err := b.Load(locator)
	if err != nil {
		return err
	}

	parts := strings.Split(keyPath, ".")
	if err := setNested(doc, parts, ParseScalar(value)); err != nil {
		return err
	}

	format, err := detectFormat(resolved)
	if err != nil {
		return err
	}
	return writeDocument(resolved, doc, format)
}

// setNested descends object segments, creating intermediate objects, and
// sets the final key.
func setNested(doc interface{}, parts []string, value interface{}) error {
	current, ok := doc.(map[string]interface{})
	if !ok {
		return fmt.Errorf("cannot set value on non-object document")
	}
	for _, part := range parts[:len(parts)-1] {
		child, exists := current[part]
		if !exists {
			child = map[string]interface{}{}
			current[part] = child
		}
		next, ok := child.(map[string]interface{})
		if !ok {
			return fmt.Errorf("path component %q is not an object", part)
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// ParseScalar classifies free text into a backend value. The precedence
// order matches the editor's scalar re-typing: null, bool literals, integer,
// float, else string.
func ParseScalar(s string) interface{} {
	switch s {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Keys lists object keys at a dotted prefix, sorted.
func (b *Native) Keys(locator, prefix string) ([]string, error) {
	doc, err := b.Load(locator)
	if err != nil {
		return nil, err
	}
	target := doc
	if prefix != "" {
		for _, part := range strings.Split(prefix, ".") {
			next, ok := descend(target, part)
			if !ok {
				return nil, nil
			}
			target = next
		}
	}
	obj, ok := target.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Info reports the resolved path, detected format, and search paths.
func (b *Native) Info(locator string) (Info, error) {
	resolved, err := b.Resolve(locator)
	if err != nil {
		return Info{}, err
	}
	format, err := detectFormat(resolved)
	if err != nil {
		return Info{}, err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		abs = resolved
	}
	return Info{Path: abs, Format: format, SearchPaths: b.SearchPaths()}, nil
}

// Validate reports parse problems as human-readable strings.
func (b *Native) Validate(locator string) ([]string, error) {
	if _, err := b.Load(locator); err != nil {
		return []string{err.Error()}, nil
	}
	return nil, nil
}

func detectFormat(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	case "toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("unknown format for extension: %q", ext)
	}
}

func writeDocument(path string, doc interface{}, format string) error {
	var buf bytes.Buffer
	switch format {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("%w: encode json: %v", ErrWrite, err)
		}
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("%w: encode yaml: %v", ErrWrite, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("%w: encode yaml: %v", ErrWrite, err)
		}
	case "toml":
		out, err := toml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("%w: encode toml: %v", ErrWrite, err)
		}
		buf.Write(out)
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrWrite, format)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
