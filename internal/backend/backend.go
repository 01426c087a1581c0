// Package backend defines the document backend capability: resolving,
// parsing, querying, and persisting configuration documents. The interactive
// editor consumes Load, Info, and Set; the CLI surface exercises the rest.
package backend

import "errors"

// ErrNotFound reports that a locator resolved to no file.
var ErrNotFound = errors.New("configuration not found")

// ErrParse reports that a document could not be parsed.
var ErrParse = errors.New("parse error")

// ErrWrite reports that a document could not be persisted.
var ErrWrite = errors.New("write error")

// Info describes a resolved configuration document.
type Info struct {
	// Path is the resolved absolute file path.
	Path string
	// Format is the detected on-disk format (json, yaml, toml).
	Format string
	// SearchPaths lists the directories consulted during resolution.
	SearchPaths []string
}

// Backend is the capability interface over configuration documents. Values
// exchanged through it are generic trees: nil, bool, int64, float64,
// json.Number, string, []interface{}, map[string]interface{}.
type Backend interface {
	// Load resolves and parses a document. Fails with ErrNotFound or ErrParse.
	Load(locator string) (interface{}, error)

	// Get returns the value at a dotted key path, reporting presence.
	Get(locator, keyPath string) (interface{}, bool, error)

	// Set parses value as a scalar and writes it at the dotted key path,
	// rewriting the whole document in its detected format. Fails with
	// ErrWrite when the document cannot be persisted.
	Set(locator, keyPath, value string) error

	// Keys lists the object keys at the given dotted path prefix ("" for
	// the document root), sorted.
	Keys(locator, prefix string) ([]string, error)

	// Info reports the resolved path, detected format, and search paths.
	Info(locator string) (Info, error)

	// Validate returns human-readable problems; an empty list means valid.
	Validate(locator string) ([]string, error)

	// SearchPaths lists the directories consulted when resolving bare names.
	SearchPaths() []string
}
