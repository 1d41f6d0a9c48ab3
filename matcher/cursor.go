package matcher

import (
	"github.com/synaptree/semtrex/nfa"
	"github.com/synaptree/semtrex/tree"
)

// cursor tracks the matcher's current position in the target tree. node is
// nil once the cursor has walked past the last
// child of parent; parent is kept even then so a later "pop k levels"
// transition can still find its way back up.
type cursor struct {
	node   *tree.Node
	parent *tree.Node
}

// rootCursor starts a match at root.
func rootCursor(root *tree.Node) cursor {
	return cursor{node: root}
}

// move applies transition trans to c: +1 descends to the first child, 0
// advances to the next sibling, -k pops
// k levels then advances to the next sibling of that ancestor, and
// nfa.TransNone leaves c unchanged. ok is false only when the motion is
// impossible outright (descending from a null cursor, or popping from a
// cursor with neither node nor parent); landing on a null "past the end"
// cursor is not itself a failure, and a pop that climbs past the root
// yields a null cursor with no parent.
func (c cursor) move(trans int) (cursor, bool) {
	switch {
	case trans == nfa.TransNone:
		return c, true
	case trans == 1:
		if c.node == nil {
			return c, false
		}
		first, _ := c.node.ChildAt(1)
		return cursor{node: first, parent: c.node}, true
	case trans == 0:
		if c.node == nil {
			return c, true
		}
		next, ok := c.node.NextSibling()
		if ok {
			return cursor{node: next, parent: c.node.Parent()}, true
		}
		return cursor{node: nil, parent: c.node.Parent()}, true
	case trans < 0:
		anc := c.node
		k := -trans
		if anc == nil {
			// parent already sits one level above the null position
			anc = c.parent
			k--
		}
		if anc == nil {
			return c, false
		}
		for i := 0; i < k; i++ {
			anc = anc.Parent()
			if anc == nil {
				return cursor{node: nil, parent: nil}, true
			}
		}
		next, ok := anc.NextSibling()
		if ok {
			return cursor{node: next, parent: anc.Parent()}, true
		}
		return cursor{node: nil, parent: anc.Parent()}, true
	default:
		return c, false
	}
}
