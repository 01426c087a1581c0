package backend

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeStub creates an executable script standing in for an external cfged
// implementation.
func writeStub(t *testing.T, body string) *External {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return NewExternal(path, nil, "stub")
}

// dispatchStub answers every operation of the backend protocol.
const dispatchStub = `case "$1" in
load) printf '{"database": {"host": "localhost", "port": 5432}}' ;;
get) printf '"%s"' "$3" ;;
keys) printf '["database", "debug"]' ;;
info) printf '{"path": "/tmp/app.json", "format": "json", "search_paths": ["/tmp"]}' ;;
validate) printf '["missing required key"]' ;;
search-paths) printf '["/etc", "/tmp"]' ;;
esac`

func TestExternalLoad(t *testing.T) {
	b := writeStub(t, dispatchStub)

	doc, err := b.Load("app")
	require.NoError(t, err)
	obj, ok := doc.(map[string]interface{})
	require.True(t, ok)
	db, ok := obj["database"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "localhost", db["host"])
	require.Equal(t, json.Number("5432"), db["port"])
}

func TestExternalGetEchoesKeyPath(t *testing.T) {
	b := writeStub(t, dispatchStub)

	// the stub echoes its third argument, proving the arg order
	v, found, err := b.Get("app", "database.host")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "database.host", v)
}

func TestExternalGetMissingKey(t *testing.T) {
	b := writeStub(t, `printf ''`)

	_, found, err := b.Get("app", "nope")
	require.NoError(t, err)
	require.False(t, found)
}

func TestExternalKeys(t *testing.T) {
	b := writeStub(t, dispatchStub)

	keys, err := b.Keys("app", "")
	require.NoError(t, err)
	require.Equal(t, []string{"database", "debug"}, keys)
}

func TestExternalInfo(t *testing.T) {
	b := writeStub(t, dispatchStub)

	info, err := b.Info("app")
	require.NoError(t, err)
	require.Equal(t, "/tmp/app.json", info.Path)
	require.Equal(t, "json", info.Format)
	require.Equal(t, []string{"/tmp"}, info.SearchPaths)
}

func TestExternalInfoMissingFields(t *testing.T) {
	b := writeStub(t, `printf '{"path": "/tmp/app.json"}'`)

	_, err := b.Info("app")
	require.ErrorContains(t, err, "missing format in info")
}

func TestExternalValidate(t *testing.T) {
	b := writeStub(t, dispatchStub)

	problems, err := b.Validate("app")
	require.NoError(t, err)
	require.Equal(t, []string{"missing required key"}, problems)
}

func TestExternalValidateClean(t *testing.T) {
	b := writeStub(t, `printf ''`)

	problems, err := b.Validate("app")
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestExternalSearchPaths(t *testing.T) {
	b := writeStub(t, dispatchStub)
	require.Equal(t, []string{"/etc", "/tmp"}, b.SearchPaths())
}

func TestExternalErrorCarriesStderr(t *testing.T) {
	b := writeStub(t, `echo "boom" >&2; exit 1`)

	_, err := b.Load("app")
	require.ErrorContains(t, err, "stub backend returned error: boom")
}

func TestExternalMissingCommand(t *testing.T) {
	b := NewExternal(filepath.Join(t.TempDir(), "no-such-binary"), nil, "ghost")

	_, err := b.Load("app")
	require.ErrorContains(t, err, "ghost backend failed to execute")
}

func TestExternalBadJSONOutput(t *testing.T) {
	b := writeStub(t, `printf 'not json'`)

	_, err := b.Load("app")
	require.ErrorIs(t, err, ErrParse)
}

func TestExternalPrefixArgs(t *testing.T) {
	// run through sh -c style prefixing: the script itself is a prefix arg
	dir := t.TempDir()
	script := filepath.Join(dir, "impl.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf '[\"k\"]'\n"), 0o755))

	b := NewExternal("/bin/sh", []string{script}, "sh")
	keys, err := b.Keys("app", "")
	require.NoError(t, err)
	require.Equal(t, []string{"k"}, keys)
}

func TestExternalConstructors(t *testing.T) {
	require.Equal(t, "cfged", NewExternalRust().command)
	require.Equal(t, "node", NewExternalJS().command)
	require.Equal(t, []string{"cfged.js"}, NewExternalJS().prefixArgs)
	require.Equal(t, "cfged", NewExternalGo().command)
	require.Equal(t, "python3", NewExternalPy().command)
	require.Equal(t, []string{"-m", "cfged"}, NewExternalPy().prefixArgs)
}
