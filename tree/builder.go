package tree

import "github.com/synaptree/semtrex/symbol"

// Builder constructs trees top-down without manual parent bookkeeping.
// Down appends a child and makes it the target of subsequent calls, Up
// closes it again, Leaf appends a childless node. Calls chain, so a whole
// tree reads as one expression:
//
//	root := tree.NewBuilder(parent, tree.Null).
//		Down(child, tree.Null).
//		Leaf(grandchild, tree.Str("x")).
//		Up().
//		Leaf(sibling, tree.Null).
//		Tree()
//
// Pattern trees are semantic trees too, so the same Builder serves for
// hand-building those where bypassing the parser is intended.
type Builder struct {
	root *Node
	open []*Node
}

// NewBuilder starts a tree rooted at (sym, surface).
func NewBuilder(sym symbol.Id, surface Surface) *Builder {
	r := New(sym, surface)
	return &Builder{root: r, open: []*Node{r}}
}

func (b *Builder) current() *Node { return b.open[len(b.open)-1] }

// Leaf appends a childless (sym, surface) node to the currently open node.
func (b *Builder) Leaf(sym symbol.Id, surface Surface) *Builder {
	NewChild(b.current(), sym, surface)
	return b
}

// Down appends a (sym, surface) node and opens it, so that subsequent
// calls attach to it until the matching Up.
func (b *Builder) Down(sym symbol.Id, surface Surface) *Builder {
	b.open = append(b.open, NewChild(b.current(), sym, surface))
	return b
}

// Up closes the node opened by the matching Down. At the root it is a
// no-op.
func (b *Builder) Up() *Builder {
	if len(b.open) > 1 {
		b.open = b.open[:len(b.open)-1]
	}
	return b
}

// Graft appends an already-built subtree to the currently open node,
// detaching it from any prior parent.
func (b *Builder) Graft(n *Node) *Builder {
	AddChild(b.current(), n)
	return b
}

// Tree returns the root, however many nodes are still open.
func (b *Builder) Tree() *Node { return b.root }
