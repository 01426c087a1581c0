// Package tree holds the editable document as a typed node tree and derives
// the flattened row projection the TUI renders.
package tree

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	runewidth "github.com/mattn/go-runewidth"
)

// Kind classifies a node's value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Node is one entry in the document tree. Scalar kinds keep their value in
// textual form (Scalar), so numbers round-trip with their original
// formatting. Array and Object kinds use Children.
type Node struct {
	Key      string
	Kind     Kind
	Scalar   string
	Children []*Node
	Expanded bool
	Depth    int
}

const previewMaxLen = 40

// FromValue builds a node tree from a generic value as produced by the
// loader: nil, bool, numbers, string, []interface{}, map[string]interface{}.
// Object children are sorted by key; array children are keyed by index in
// bracket notation. Nodes above depth 2 start collapsed to bound the initial
// view on large documents.
func FromValue(key string, value interface{}, depth int) *Node {
	n := &Node{Key: key, Expanded: depth < 2, Depth: depth}
	switch v := value.(type) {
	case nil:
		n.Kind = Null
	case bool:
		n.Kind = Bool
		n.Scalar = strconv.FormatBool(v)
	case string:
		n.Kind = String
		n.Scalar = v
	case json.Number:
		n.Kind = Number
		n.Scalar = v.String()
	case int:
		n.Kind = Number
		n.Scalar = strconv.Itoa(v)
	case int64:
		n.Kind = Number
		n.Scalar = strconv.FormatInt(v, 10)
	case uint64:
		n.Kind = Number
		n.Scalar = strconv.FormatUint(v, 10)
	case float64:
		n.Kind = Number
		n.Scalar = strconv.FormatFloat(v, 'g', -1, 64)
	case []interface{}:
		n.Kind = Array
		n.Children = make([]*Node, 0, len(v))
		for i, item := range v {
			n.Children = append(n.Children, FromValue(fmt.Sprintf("[%d]", i), item, depth+1))
		}
	case map[string]interface{}:
		n.Kind = Object
		n.Children = make([]*Node, 0, len(v))
		for k, item := range v {
			n.Children = append(n.Children, FromValue(k, item, depth+1))
		}
		sortByKey(n.Children)
	default:
		// Unknown scalar types degrade to their string form.
		n.Kind = String
		n.Scalar = fmt.Sprint(v)
	}
	return n
}

// ToValue converts the tree back to the generic value form exchanged with
// the backend. Numbers are re-inferred as int64 when possible, then float64;
// unparseable number text degrades to a string.
func (n *Node) ToValue() interface{} {
	switch n.Kind {
	case Null:
		return nil
	case Bool:
		return n.Scalar == "true"
	case Number:
		if i, err := strconv.ParseInt(n.Scalar, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(n.Scalar, 64); err == nil {
			return f
		}
		return n.Scalar
	case String:
		return n.Scalar
	case Array:
		arr := make([]interface{}, 0, len(n.Children))
		for _, c := range n.Children {
			arr = append(arr, c.ToValue())
		}
		return arr
	case Object:
		obj := make(map[string]interface{}, len(n.Children))
		for _, c := range n.Children {
			obj[c.Key] = c.ToValue()
		}
		return obj
	}
	return nil
}

// Expandable reports whether the node is a container.
func (n *Node) Expandable() bool {
	return n.Kind == Array || n.Kind == Object
}

// Editable reports whether the node holds a scalar value.
func (n *Node) Editable() bool {
	return !n.Expandable()
}

// EditableValue returns the scalar text used as the edit buffer seed, and
// false for containers.
func (n *Node) EditableValue() (string, bool) {
	switch n.Kind {
	case Null:
		return "null", true
	case Bool, Number, String:
		return n.Scalar, true
	default:
		return "", false
	}
}

// SetScalarFromString re-types the node from free text. The precedence order
// is load-bearing: null literal, bool literals, integer-parseable,
// float-parseable, else string.
func (n *Node) SetScalarFromString(s string) {
	n.Children = nil
	switch {
	case s == "null":
		n.Kind = Null
		n.Scalar = ""
	case s == "true" || s == "false":
		n.Kind = Bool
		n.Scalar = s
	default:
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			n.Kind = Number
			n.Scalar = s
			return
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			n.Kind = Number
			n.Scalar = s
			return
		}
		n.Kind = String
		n.Scalar = s
	}
}

// At resolves a node by its path of child indices from this node. Paths are
// only valid against the tree they were projected from; a stale path is a
// caller bug and reported as an error rather than a panic.
func (n *Node) At(path []int) (*Node, error) {
	current := n
	for _, idx := range path {
		if idx < 0 || idx >= len(current.Children) {
			return nil, fmt.Errorf("stale path: index %d out of range (%d children)", idx, len(current.Children))
		}
		current = current.Children[idx]
	}
	return current, nil
}

// AddChild appends child to a container node, re-deriving its depth. Object
// children are re-sorted by key; array children are re-keyed to their index.
// Returns false when the node is a scalar.
func (n *Node) AddChild(child *Node) bool {
	if !n.Expandable() {
		return false
	}
	child.Depth = n.Depth + 1
	child.Expanded = false
	if n.Kind == Array {
		child.Key = fmt.Sprintf("[%d]", len(n.Children))
	}
	n.Children = append(n.Children, child)
	if n.Kind == Object {
		sortByKey(n.Children)
	}
	return true
}

// RemoveChild removes the child at index. Array display keys are renumbered
// so indices stay contiguous.
func (n *Node) RemoveChild(index int) bool {
	if !n.Expandable() || index < 0 || index >= len(n.Children) {
		return false
	}
	n.Children = append(n.Children[:index], n.Children[index+1:]...)
	if n.Kind == Array {
		for i := index; i < len(n.Children); i++ {
			n.Children[i].Key = fmt.Sprintf("[%d]", i)
		}
	}
	return true
}

// TypeTag returns the short type indicator shown after each row.
func (n *Node) TypeTag() string {
	switch n.Kind {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "num"
	case String:
		return "str"
	case Array:
		if len(n.Children) == 0 {
			return "[]"
		}
		return "[…]"
	case Object:
		if len(n.Children) == 0 {
			return "{}"
		}
		return "{…}"
	}
	return ""
}

// Preview returns the human-readable value summary for a row. Strings are
// quoted and truncated past 40 characters; containers summarize their size.
func (n *Node) Preview() string {
	switch n.Kind {
	case Null:
		return "null"
	case Bool, Number:
		return n.Scalar
	case String:
		if utf8.RuneCountInString(n.Scalar) > previewMaxLen {
			return "\"" + runewidth.Truncate(n.Scalar, previewMaxLen-3, "…") + "\""
		}
		return "\"" + n.Scalar + "\""
	case Array:
		return fmt.Sprintf("[%d items]", len(n.Children))
	case Object:
		return fmt.Sprintf("{%d keys}", len(n.Children))
	}
	return ""
}

func sortByKey(children []*Node) {
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Key < children[j].Key
	})
}
