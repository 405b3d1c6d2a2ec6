package huffpack

// NoSymbol marks an internal node. It is outside the byte range so it cannot be
// confused with the 0x00 symbol.
const NoSymbol int16 = -1

// noNode is the nil index in the node arena.
const noNode int32 = -1

// Node is one entry of the tree arena. Children and parent are arena indices.
type Node struct {
	Symbol int16
	Weight uint64
	Left   int32
	Right  int32
	Parent int32
}

// IsLeaf reports whether the node carries a symbol.
func (n Node) IsLeaf() bool {
	return n.Symbol != NoSymbol
}

// Tree is a Huffman tree stored as an index arena. Leaves occupy the first
// Leaves() slots in ascending symbol order; internal nodes follow in merge order.
type Tree struct {
	nodes  []Node
	root   int32
	leaves int
	leafOf [alphabetSize]int32
}

// BuildTree merges the two lightest nodes until one remains. The first node
// popped becomes the left child.
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	unique := ft.Unique()
	if unique == 0 {
		return nil, ErrEmptyInput
	}

	t := &Tree{
		nodes:  make([]Node, 0, 2*unique-1),
		leaves: unique,
	}
	for i := range t.leafOf {
		t.leafOf[i] = noNode
	}

	q := newNodeQueue(unique)
	for _, sym := range ft.Symbols() {
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, Node{
			Symbol: int16(sym),
			Weight: ft.Count(sym),
			Left:   noNode,
			Right:  noNode,
			Parent: noNode,
		})
		t.leafOf[sym] = idx
		q.push(idx, ft.Count(sym))
	}

	for q.Len() > 1 {
		left, lw := q.popMin()
		right, rw := q.popMin()
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, Node{
			Symbol: NoSymbol,
			Weight: lw + rw,
			Left:   left,
			Right:  right,
			Parent: noNode,
		})
		t.nodes[left].Parent = idx
		t.nodes[right].Parent = idx
		q.push(idx, lw+rw)
	}

	t.root, _ = q.popMin()
	return t, nil
}

// Root returns the index of the root node.
func (t *Tree) Root() int32 { return t.root }

// Node returns the node at idx.
func (t *Tree) Node(idx int32) Node { return t.nodes[idx] }

// Len returns the total number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Leaves returns the number of leaves.
func (t *Tree) Leaves() int { return t.leaves }

// Single reports whether the tree is a lone leaf.
func (t *Tree) Single() bool { return t.leaves == 1 }

// Leaf returns the arena index of sym's leaf, or -1 if sym is absent.
func (t *Tree) Leaf(sym byte) int32 { return t.leafOf[sym] }

// step follows one edge from idx: 0 goes left, 1 goes right.
func (t *Tree) step(idx int32, bit uint8) int32 {
	if bit == 0 {
		return t.nodes[idx].Left
	}
	return t.nodes[idx].Right
}

// Depth returns the height of the tree in edges.
func (t *Tree) Depth() int {
	depth := 0
	for i := 0; i < t.leaves; i++ {
		d := 0
		for p := t.nodes[i].Parent; p != noNode; p = t.nodes[p].Parent {
			d++
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

// Walk visits the nodes breadth-first from the root, left child before right.
func (t *Tree) Walk(fn func(idx int32, n Node)) {
	queue := make([]int32, 0, len(t.nodes))
	queue = append(queue, t.root)
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		n := t.nodes[idx]
		if n.Left != noNode {
			queue = append(queue, n.Left)
		}
		if n.Right != noNode {
			queue = append(queue, n.Right)
		}
		fn(idx, n)
	}
}
