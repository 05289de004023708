package bytehuff

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeID addresses one node of a Tree.
type NodeID int32

// InvalidNode is returned by some functions to clearly indicate that no node
// is being returned.
const InvalidNode = NodeID(-1)

// Tree is an immutable Huffman tree.  Its nodes live in a single slice and
// refer to their children by index, so a Tree owns all of its nodes and has
// no cycles or shared subtrees.
//
// Leaves are stored first, in ascending Symbol order, followed by internal
// nodes in the order they were created.  A node's NodeID is therefore also
// the order in which it entered the merge queue.
type Tree struct {
	nodes     []node
	root      NodeID
	numLeaves int
}

type node struct {
	weight uint64
	left   NodeID
	right  NodeID
	symbol Symbol
}

func (n node) isLeaf() bool {
	return n.left == InvalidNode
}

// BuildTree builds the Huffman tree for the given frequencies.
//
// Nodes are merged two at a time, lowest weight first.  Among nodes of equal
// weight, the one that entered the queue earlier is taken first; leaves enter
// in ascending Symbol order, and each merged node enters after every node
// that already exists.  The first node taken becomes the left child (bit 0)
// and the second becomes the right child (bit 1).  The same FrequencyTable
// therefore always yields the same tree.
//
// A table with exactly one symbol yields a tree consisting of a single leaf.
// An empty table yields *EmptyInputError.
//
func BuildTree(ft FrequencyTable) (*Tree, error) {
	entries := ft.Entries()
	numLeaves := len(entries)
	if numLeaves == 0 {
		return nil, &EmptyInputError{}
	}

	nodes := make([]node, 0, 2*numLeaves-1)
	items := make([]weightAndID, 0, numLeaves)
	for _, entry := range entries {
		id := NodeID(len(nodes))
		nodes = append(nodes, node{
			weight: entry.Count,
			left:   InvalidNode,
			right:  InvalidNode,
			symbol: entry.Symbol,
		})
		items = append(items, weightAndID{entry.Count, id})
	}

	h := weightHeap{items}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(weightAndID)
		b := heap.Pop(&h).(weightAndID)

		id := NodeID(len(nodes))
		weight := satAdd64(a.weight, b.weight)
		nodes = append(nodes, node{
			weight: weight,
			left:   a.id,
			right:  b.id,
		})
		heap.Push(&h, weightAndID{weight, id})
	}

	root := heap.Pop(&h).(weightAndID)
	assert.Assertf(len(nodes) == 2*numLeaves-1, "tree with %d leaves has %d nodes", numLeaves, len(nodes))

	return &Tree{
		nodes:     nodes,
		root:      root.id,
		numLeaves: numLeaves,
	}, nil
}

// Root returns the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the total number of nodes, leaves and internal nodes alike.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the number of distinct symbols.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// IsLeaf returns true iff id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.get(id).isLeaf()
}

// Symbol returns the symbol of a leaf.
func (t *Tree) Symbol(id NodeID) Symbol {
	n := t.get(id)
	assert.Assertf(n.isLeaf(), "node %d is not a leaf", id)
	return n.symbol
}

// Weight returns the weight of a node: the count of a leaf, or the sum of
// the children's weights for an internal node.
func (t *Tree) Weight(id NodeID) uint64 {
	return t.get(id).weight
}

// Children returns the left (bit 0) and right (bit 1) children of an
// internal node.
func (t *Tree) Children(id NodeID) (left NodeID, right NodeID) {
	n := t.get(id)
	assert.Assertf(!n.isLeaf(), "node %d is a leaf", id)
	return n.left, n.right
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.  Nodes are listed in depth-first order, each with its path from
// the root.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", len(t.nodes))
	fmt.Fprintf(&buf, "\tNumLeaves() = %d\n", t.numLeaves)
	t.walk(func(id NodeID, path Code) {
		n := t.nodes[id]
		if n.isLeaf() {
			fmt.Fprintf(&buf, "\t%s = #%d leaf 0x%02x (%d)\n", path, id, byte(n.symbol), n.weight)
		} else {
			fmt.Fprintf(&buf, "\t%s = #%d (%d)\n", path, id, n.weight)
		}
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree) get(id NodeID) node {
	assert.Assertf(id >= 0 && int(id) < len(t.nodes), "NodeID %d out of range [0..%d)", id, len(t.nodes))
	return t.nodes[id]
}

// walk visits every node in depth-first order, left before right, passing
// the path from the root to that node.
//
// We use an explicit stack rather than recursion.  stackItem.x tracks where
// we are in the walk of that node:
//   x=0 → We have not yet descended into either child
//   x=1 → We have already processed the left child
//   x=2 → We have already processed both children
//
func (t *Tree) walk(visit func(id NodeID, path Code)) {
	type stackItem struct {
		id   NodeID
		path Code
		x    byte
	}

	stack := make([]stackItem, 0, 16)

	stackPush := func(id NodeID, path Code) {
		visit(id, path)
		stack = append(stack, stackItem{id: id, path: path})
	}

	stackPop := func() {
		stack = stack[:len(stack)-1]
	}

	stackPush(t.root, Code{})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		n := t.nodes[top.id]
		if n.isLeaf() {
			stackPop()
			continue
		}

		x := top.x
		top.x++
		switch x {
		case 0:
			stackPush(n.left, top.path.Append(0))
		case 1:
			stackPush(n.right, top.path.Append(1))
		case 2:
			stackPop()
		}
	}
}

// type weightAndID + type weightHeap {{{

type weightAndID struct {
	weight uint64
	id     NodeID
}

type weightHeap struct {
	list []weightAndID
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.id < b.id
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(weightAndID))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
