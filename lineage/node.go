// Package lineage parses the compact cell-lineage notation into a forest of
// binary trees. Leaves are deaths, internal nodes are divisions, and every
// node carries the absolute simulated time at which its event fires.
//
// It has no dependencies on sim/ and holds only the tree data and its text form.
package lineage

// MaxType is the largest cell-type tag ('Z' - 'A').
const MaxType = 25

// Node is one scheduled event (death or division) for a lineage branch.
// A node owns its children exclusively; particles hold non-owning pointers.
// Nodes are not mutated after parsing.
type Node struct {
	Type      int     // cell-type tag, 0..MaxType
	EventTime float64 // absolute simulated time at which the event fires
	Offset    float64 // time as written in the notation, relative to the parent
	Left      *Node   // nil for a death (leaf)
	Right     *Node   // nil for a death (leaf)
}

// Forest is an ordered set of lineage roots, in order of appearance in the input.
type Forest []*Node

// IsLeaf reports whether the node schedules a death.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// IsBranch reports whether the node schedules a division.
func (n *Node) IsBranch() bool {
	return n.Left != nil && n.Right != nil
}

// IsValid reports whether the node has either both or no children.
func (n *Node) IsValid() bool {
	return n.IsLeaf() || n.IsBranch()
}

// TypeLetter renders the type tag as the uppercase letter used in the notation.
func (n *Node) TypeLetter() byte {
	return TypeLetter(n.Type)
}

// TypeLetter renders a type tag as an uppercase letter ('A' + t).
func TypeLetter(t int) byte {
	return byte('A' + t)
}

// Walk visits n and all of its descendants depth-first, parent before children.
// Walking stops early when fn returns false.
func (n *Node) Walk(fn func(node, parent *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(parent *Node, fn func(node, parent *Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, parent) {
		return false
	}
	return n.Left.walk(n, fn) && n.Right.walk(n, fn)
}
