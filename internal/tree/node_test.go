package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDoc() map[string]interface{} {
	return map[string]interface{}{
		"database": map[string]interface{}{
			"host": "localhost",
			"port": json.Number("5432"),
		},
		"debug": true,
		"name":  "svc",
	}
}

func TestFromValueSortsObjectKeys(t *testing.T) {
	root := FromValue("root", sampleDoc(), 0)

	require.Equal(t, Object, root.Kind)
	keys := make([]string, 0, len(root.Children))
	for _, c := range root.Children {
		keys = append(keys, c.Key)
	}
	require.Equal(t, []string{"database", "debug", "name"}, keys)
}

func TestFromValueDerivesDepthAndExpansion(t *testing.T) {
	root := FromValue("root", map[string]interface{}{
		"a": map[string]interface{}{
			"b": map[string]interface{}{
				"c": "deep",
			},
		},
	}, 0)

	a := root.Children[0]
	b := a.Children[0]
	c := b.Children[0]
	require.Equal(t, 1, a.Depth)
	require.Equal(t, 2, b.Depth)
	require.Equal(t, 3, c.Depth)

	require.True(t, root.Expanded)
	require.True(t, a.Expanded)
	require.False(t, b.Expanded, "nodes at depth >= 2 start collapsed")
}

func TestFromValueArrayKeys(t *testing.T) {
	root := FromValue("root", []interface{}{"a", "b", "c"}, 0)

	require.Equal(t, Array, root.Kind)
	require.Equal(t, "[0]", root.Children[0].Key)
	require.Equal(t, "[1]", root.Children[1].Key)
	require.Equal(t, "[2]", root.Children[2].Key)
}

func TestRoundTripScalarsAndArrays(t *testing.T) {
	cases := []interface{}{
		nil,
		true,
		false,
		"hello",
		[]interface{}{int64(1), "two", false, nil},
	}
	for _, v := range cases {
		got := FromValue("root", v, 0).ToValue()
		require.Equal(t, v, got)
	}
}

func TestRoundTripNumberKeepsTextualForm(t *testing.T) {
	n := FromValue("root", json.Number("0.50"), 0)
	require.Equal(t, "0.50", n.Scalar)
	// Conversion back re-infers the numeric type.
	require.Equal(t, 0.5, n.ToValue())

	i := FromValue("root", json.Number("42"), 0)
	require.Equal(t, int64(42), i.ToValue())
}

func TestRoundTripObjectAsKeyValueSet(t *testing.T) {
	root := FromValue("root", sampleDoc(), 0)
	got, ok := root.ToValue().(map[string]interface{})
	require.True(t, ok)

	require.Equal(t, true, got["debug"])
	require.Equal(t, "svc", got["name"])
	db := got["database"].(map[string]interface{})
	require.Equal(t, "localhost", db["host"])
	require.Equal(t, int64(5432), db["port"])
}

func TestSetScalarFromStringPrecedence(t *testing.T) {
	n := &Node{Kind: String}

	n.SetScalarFromString("null")
	require.Equal(t, Null, n.Kind)

	n.SetScalarFromString("true")
	require.Equal(t, Bool, n.Kind)
	n.SetScalarFromString("false")
	require.Equal(t, Bool, n.Kind)

	n.SetScalarFromString("42")
	require.Equal(t, Number, n.Kind)
	require.Equal(t, "42", n.Scalar)

	n.SetScalarFromString("3.14")
	require.Equal(t, Number, n.Kind)
	require.Equal(t, "3.14", n.Scalar)

	n.SetScalarFromString("hello")
	require.Equal(t, String, n.Kind)

	// "True" is not a bool literal; it is also not a number.
	n.SetScalarFromString("True")
	require.Equal(t, String, n.Kind)
}

func TestRemoveChildRenumbersArray(t *testing.T) {
	root := FromValue("root", []interface{}{"a", "b", "c"}, 0)

	require.True(t, root.RemoveChild(1))
	require.Len(t, root.Children, 2)
	require.Equal(t, "[0]", root.Children[0].Key)
	require.Equal(t, "[1]", root.Children[1].Key)
	require.Equal(t, "a", root.Children[0].Scalar)
	require.Equal(t, "c", root.Children[1].Scalar)
}

func TestRemoveChildOutOfRange(t *testing.T) {
	root := FromValue("root", []interface{}{"a"}, 0)
	require.False(t, root.RemoveChild(5))
	require.False(t, root.RemoveChild(-1))
}

func TestAddChildToObjectResorts(t *testing.T) {
	root := FromValue("root", map[string]interface{}{"b": 1, "z": 2}, 0)

	added := root.AddChild(&Node{Key: "a", Kind: String, Scalar: "value"})
	require.True(t, added)
	require.Equal(t, "a", root.Children[0].Key)
	require.Equal(t, 1, root.Children[0].Depth)
}

func TestAddChildToArrayAssignsIndexKey(t *testing.T) {
	root := FromValue("root", []interface{}{"a"}, 0)

	require.True(t, root.AddChild(&Node{Kind: String, Scalar: "value"}))
	require.Equal(t, "[1]", root.Children[1].Key)
}

func TestAddChildToScalarRefused(t *testing.T) {
	n := FromValue("root", "scalar", 0)
	require.False(t, n.AddChild(&Node{Key: "x"}))
}

func TestAtResolvesPath(t *testing.T) {
	root := FromValue("root", sampleDoc(), 0)

	host, err := root.At([]int{0, 0})
	require.NoError(t, err)
	require.Equal(t, "host", host.Key)

	_, err = root.At([]int{0, 99})
	require.Error(t, err)
}

func TestPreview(t *testing.T) {
	require.Equal(t, "null", FromValue("k", nil, 0).Preview())
	require.Equal(t, "true", FromValue("k", true, 0).Preview())
	require.Equal(t, `"hi"`, FromValue("k", "hi", 0).Preview())
	require.Equal(t, "[2 items]", FromValue("k", []interface{}{1, 2}, 0).Preview())
	require.Equal(t, "{1 keys}", FromValue("k", map[string]interface{}{"a": 1}, 0).Preview())

	long := FromValue("k", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 0)
	preview := long.Preview()
	require.Contains(t, preview, "…")
	require.Less(t, len([]rune(preview)), 45)
}

func TestTypeTags(t *testing.T) {
	require.Equal(t, "null", FromValue("k", nil, 0).TypeTag())
	require.Equal(t, "bool", FromValue("k", false, 0).TypeTag())
	require.Equal(t, "num", FromValue("k", json.Number("1"), 0).TypeTag())
	require.Equal(t, "str", FromValue("k", "s", 0).TypeTag())
	require.Equal(t, "[]", FromValue("k", []interface{}{}, 0).TypeTag())
	require.Equal(t, "[…]", FromValue("k", []interface{}{1}, 0).TypeTag())
	require.Equal(t, "{}", FromValue("k", map[string]interface{}{}, 0).TypeTag())
	require.Equal(t, "{…}", FromValue("k", map[string]interface{}{"a": 1}, 0).TypeTag())
}

func TestEditableValue(t *testing.T) {
	v, ok := FromValue("k", nil, 0).EditableValue()
	require.True(t, ok)
	require.Equal(t, "null", v)

	_, ok = FromValue("k", map[string]interface{}{}, 0).EditableValue()
	require.False(t, ok)
}
