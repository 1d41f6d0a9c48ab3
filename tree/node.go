/*
Package tree implements ordered, parent-pointed semantic trees: nodes own
their children, surfaces are a tagged union of scalar values, and navigation
is strictly 1-indexed. The rest of this module (pattern parser, NFA
builder, matcher) is built on it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/synaptree/semtrex/symbol"
)

func tracer() tracing.Trace {
	return tracing.Select("semtrex.tree")
}

// OutOfRange is returned by mutation operations given an invalid child
// index.
type OutOfRange struct {
	Index, Count int
}

func (e OutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range (have %d children)", e.Index, e.Count)
}

// Node is an ordered tree node. Children are contiguously indexed 1..n. A
// node with Parent == nil is a root.
type Node struct {
	Symbol   symbol.Id
	Surface  Surface
	children []*Node
	parent   *Node
}

// New creates a new detached (root) node.
func New(sym symbol.Id, surface Surface) *Node {
	return &Node{Symbol: sym, Surface: surface}
}

// NewChild creates a new node with the given symbol/surface and appends it
// to parent.
func NewChild(parent *Node, sym symbol.Id, surface Surface) *Node {
	n := New(sym, surface)
	AddChild(parent, n)
	return n
}

// Parent returns n's parent, or nil if n is a root.
func (n *Node) Parent() *Node { return n.parent }

// ChildCount returns the number of direct children of n.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the i-th child (1-indexed). ok is false for out-of-range i.
func (n *Node) ChildAt(i int) (*Node, bool) {
	if i < 1 || i > len(n.children) {
		return nil, false
	}
	return n.children[i-1], true
}

// Children returns a copy of n's ordered children slice.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// NodeIndex returns n's 1-indexed position among its parent's children, and
// false if n is a root.
func (n *Node) NodeIndex() (int, bool) {
	if n.parent == nil {
		return 0, false
	}
	for i, c := range n.parent.children {
		if c == n {
			return i + 1, true
		}
	}
	// Invariant violation: a non-root node must appear in its parent's list.
	return 0, false
}

// NextSibling returns the node immediately to n's right among its
// parent's children, or false if n is a root or the last child.
func (n *Node) NextSibling() (*Node, bool) {
	idx, ok := n.NodeIndex()
	if !ok {
		return nil, false
	}
	return n.parent.ChildAt(idx + 1)
}

// AddChild appends c to p's children, detaching c from its prior parent
// first if it had one.
func AddChild(p *Node, c *Node) {
	if c.parent != nil {
		Detach(c)
	}
	p.children = append(p.children, c)
	c.parent = p
}

// InsertAt inserts c as p's i-th child (1-indexed), shifting later children
// right. i == ChildCount()+1 appends. Returns OutOfRange for any other
// invalid i.
func InsertAt(p *Node, i int, c *Node) error {
	if i < 1 || i > len(p.children)+1 {
		return OutOfRange{Index: i, Count: len(p.children)}
	}
	if c.parent != nil {
		Detach(c)
	}
	p.children = append(p.children, nil)
	copy(p.children[i:], p.children[i-1:])
	p.children[i-1] = c
	c.parent = p
	return nil
}

// Detach removes n from its parent's children and returns n as an
// ownership-transferring root. Calling Detach on an already-detached node is
// a no-op.
func Detach(n *Node) *Node {
	if n.parent == nil {
		return n
	}
	idx, ok := n.NodeIndex()
	if ok {
		p := n.parent
		p.children = append(p.children[:idx-1], p.children[idx:]...)
	}
	n.parent = nil
	return n
}

// Clone deep-copies n (and all descendants) into a new, parentless root.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := New(n.Symbol, n.Surface)
	for _, ch := range n.children {
		AddChild(c, Clone(ch))
	}
	return c
}

// Morph overwrites only dst's Symbol and Surface with src's, leaving dst's
// children and parent untouched.
func Morph(dst, src *Node) {
	dst.Symbol = src.Symbol
	dst.Surface = src.Surface
}

// ReplaceNode transfers src's children into dst (reparenting them to dst)
// and leaves src with no children. dst's own prior children are discarded.
// dst's Symbol/Surface are left unchanged; callers that also want those
// updated should call Morph first.
func ReplaceNode(dst, src *Node) {
	dst.children = dst.children[:0]
	for _, ch := range src.children {
		ch.parent = nil
		AddChild(dst, ch)
	}
	src.children = nil
}

func (n *Node) String() string {
	label, _ := globalLabeler(n.Symbol)
	if label == "" {
		label = n.Symbol.String()
	}
	if n.Surface.Tag == SurfaceNull {
		return fmt.Sprintf("(%s)", label)
	}
	return fmt.Sprintf("(%s:%s)", label, n.Surface)
}

// globalLabeler is overridable by the pretty-printer package-level hook so
// that Node.String can show human labels without node.go importing symbol
// registries directly as a hard dependency.
var globalLabeler = func(symbol.Id) (string, bool) { return "", false }

// SetLabeler installs a function used by Node.String to render a symbol's
// label. Passing nil restores the default, which prints the raw identifier.
func SetLabeler(f func(symbol.Id) (string, bool)) {
	if f == nil {
		f = func(symbol.Id) (string, bool) { return "", false }
	}
	globalLabeler = f
}
