package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// External proxies every operation to another cfged implementation by
// running it as a subprocess and parsing the JSON it prints. Pointing two
// backends at the same document is how cross-implementation answers get
// compared during integration testing.
type External struct {
	// command is the executable to run, e.g. "cfged", "node", "python3".
	command string
	// prefixArgs go before the operation, e.g. ["cfged.js"] for node.
	prefixArgs []string
	// name identifies the backend in error messages.
	name string
}

// NewExternal builds a backend around an arbitrary command.
func NewExternal(command string, prefixArgs []string, name string) *External {
	return &External{command: command, prefixArgs: prefixArgs, name: name}
}

// NewExternalRust shells out to a cfged binary on PATH (for version testing).
func NewExternalRust() *External {
	return NewExternal("cfged", nil, "rust")
}

// NewExternalJS shells out to Node.js running cfged.js.
func NewExternalJS() *External {
	return NewExternal("node", []string{"cfged.js"}, "js")
}

// NewExternalGo shells out to a cfged binary on PATH.
func NewExternalGo() *External {
	return NewExternal("cfged", nil, "go")
}

// NewExternalPy shells out to Python running the cfged module.
func NewExternalPy() *External {
	return NewExternal("python3", []string{"-m", "cfged"}, "py")
}

func (b *External) run(args ...string) (string, error) {
	full := append(append([]string(nil), b.prefixArgs...), args...)
	cmd := exec.Command(b.command, full...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s backend returned error: %s", b.name, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("%s backend failed to execute: %w", b.name, err)
	}
	return stdout.String(), nil
}

func (b *External) parseJSON(output string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(output))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %s backend output: %v", ErrParse, b.name, err)
	}
	return v, nil
}

func (b *External) parseStringList(output string) ([]string, error) {
	v, err := b.parseJSON(output)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s backend: expected a JSON array, got %T", b.name, v)
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s backend: expected strings in array, got %T", b.name, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// Load asks the external implementation to parse the document and return it
// as JSON.
func (b *External) Load(locator string) (interface{}, error) {
	out, err := b.run("load", locator)
	if err != nil {
		return nil, err
	}
	return b.parseJSON(out)
}

// Get returns the value at a dotted key path. Empty output means the key is
// absent.
func (b *External) Get(locator, keyPath string) (interface{}, bool, error) {
	out, err := b.run("get", locator, keyPath)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, false, nil
	}
	v, err := b.parseJSON(out)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Set writes a scalar at the dotted key path through the external
// implementation.
func (b *External) Set(locator, keyPath, value string) error {
	_, err := b.run("set", locator, keyPath, value)
	return err
}

// Keys lists the object keys at the given path prefix.
func (b *External) Keys(locator, prefix string) ([]string, error) {
	var out string
	var err error
	if prefix == "" {
		out, err = b.run("keys", locator)
	} else {
		out, err = b.run("keys", locator, prefix)
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, nil
	}
	return b.parseStringList(out)
}

// Info reports the resolved path, format, and search paths as the external
// implementation sees them.
func (b *External) Info(locator string) (Info, error) {
	out, err := b.run("info", locator)
	if err != nil {
		return Info{}, err
	}
	v, err := b.parseJSON(out)
	if err != nil {
		return Info{}, err
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return Info{}, fmt.Errorf("%s backend: expected a JSON object for info", b.name)
	}

	info := Info{}
	if s, ok := obj["path"].(string); ok {
		info.Path = s
	} else {
		return Info{}, fmt.Errorf("%s backend: missing path in info", b.name)
	}
	if s, ok := obj["format"].(string); ok {
		info.Format = s
	} else {
		return Info{}, fmt.Errorf("%s backend: missing format in info", b.name)
	}
	if arr, ok := obj["search_paths"].([]interface{}); ok {
		for _, item := range arr {
			if s, ok := item.(string); ok {
				info.SearchPaths = append(info.SearchPaths, s)
			}
		}
	}
	return info, nil
}

// Validate returns the problems the external implementation reports. Empty
// output means the document is valid.
func (b *External) Validate(locator string) ([]string, error) {
	out, err := b.run("validate", locator)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, nil
	}
	return b.parseStringList(out)
}

// SearchPaths queries the external implementation's search paths,
// best-effort.
func (b *External) SearchPaths() []string {
	out, err := b.run("search-paths")
	if err != nil || strings.TrimSpace(out) == "" {
		return nil
	}
	paths, err := b.parseStringList(out)
	if err != nil {
		return nil
	}
	return paths
}
