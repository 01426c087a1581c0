package tree

// Row is one visible line of the projection: a snapshot of a node plus the
// path that reaches it. Rows are derived data and never mutated; mutations go
// through the path back into the tree.
type Row struct {
	Key        string
	Depth      int
	Expanded   bool
	Expandable bool
	Editable   bool
	Type       string
	Preview    string
	Path       []int
}

// Flatten projects the tree onto the list of currently visible rows:
// depth-first pre-order, descending only into expanded nodes. The root is
// always row 0 regardless of its expansion state. The projection is a pure
// function of the tree, so within one input-handling step row indices and
// paths are stable.
func Flatten(root *Node) []Row {
	var rows []Row
	flattenNode(root, nil, &rows)
	return rows
}

func flattenNode(n *Node, path []int, rows *[]Row) {
	*rows = append(*rows, Row{
		Key:        n.Key,
		Depth:      n.Depth,
		Expanded:   n.Expanded,
		Expandable: n.Expandable(),
		Editable:   n.Editable(),
		Type:       n.TypeTag(),
		Preview:    n.Preview(),
		Path:       append([]int(nil), path...),
	})

	if !n.Expanded {
		return
	}
	for i, child := range n.Children {
		flattenNode(child, append(path, i), rows)
	}
}
