package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenVisitsExpandedOnly(t *testing.T) {
	root := FromValue("root", map[string]interface{}{
		"database": map[string]interface{}{
			"host": "localhost",
			"port": 5432,
		},
		"port": 1,
	}, 0)

	rows := Flatten(root)
	keys := rowKeys(rows)
	require.Equal(t, []string{"root", "database", "host", "port", "port"}, keys)

	// Collapse "database": its children disappear from the projection.
	root.Children[0].Expanded = false
	rows = Flatten(root)
	require.Equal(t, []string{"root", "database", "port"}, rowKeys(rows))
}

func TestFlattenRootAlwaysRowZero(t *testing.T) {
	root := FromValue("root", map[string]interface{}{"a": 1}, 0)
	root.Expanded = false

	rows := Flatten(root)
	require.Len(t, rows, 1)
	require.Equal(t, "root", rows[0].Key)
	require.Empty(t, rows[0].Path)
}

func TestFlattenPreOrderAndPaths(t *testing.T) {
	root := FromValue("root", map[string]interface{}{
		"a": []interface{}{"x", "y"},
		"b": "leaf",
	}, 0)

	rows := Flatten(root)
	require.Equal(t, []string{"root", "a", "[0]", "[1]", "b"}, rowKeys(rows))
	require.Equal(t, []int{0}, rows[1].Path)
	require.Equal(t, []int{0, 0}, rows[2].Path)
	require.Equal(t, []int{0, 1}, rows[3].Path)
	require.Equal(t, []int{1}, rows[4].Path)
}

func TestFlattenIsDeterministic(t *testing.T) {
	root := FromValue("root", map[string]interface{}{
		"z": 1, "a": 2, "m": map[string]interface{}{"mm": 3},
	}, 0)

	first := Flatten(root)
	second := Flatten(root)
	require.Equal(t, first, second)
}

func TestFlattenRowAttributes(t *testing.T) {
	root := FromValue("root", map[string]interface{}{"s": "v"}, 0)

	rows := Flatten(root)
	require.True(t, rows[0].Expandable)
	require.False(t, rows[0].Editable)
	require.Equal(t, "{…}", rows[0].Type)

	require.False(t, rows[1].Expandable)
	require.True(t, rows[1].Editable)
	require.Equal(t, "str", rows[1].Type)
	require.Equal(t, `"v"`, rows[1].Preview)
	require.Equal(t, 1, rows[1].Depth)
}

func rowKeys(rows []Row) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	return keys
}
