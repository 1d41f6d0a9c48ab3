package tree

// StepInWalk returns the node that follows n in a depth-first pre-order
// traversal rooted at origin: first n's first child, else n's next
// sibling, else the next sibling of the nearest ancestor still within
// origin's subtree. It returns (nil, false) once the traversal has
// exhausted origin's subtree. Walk below uses it to implement the bulk
// traversal, which the matcher's walk operator uses to collect its
// candidate nodes.
func StepInWalk(n, origin *Node) (*Node, bool) {
	if c, ok := n.ChildAt(1); ok {
		return c, true
	}
	cur := n
	for cur != origin {
		if sib, ok := cur.NextSibling(); ok {
			return sib, true
		}
		if cur.parent == nil {
			return nil, false
		}
		cur = cur.parent
	}
	return nil, false
}

// Walk visits origin and every node reachable from it in depth-first
// pre-order, calling visit for each. Traversal stops early if visit returns
// false.
func Walk(origin *Node, visit func(*Node) bool) {
	if origin == nil {
		return
	}
	if !visit(origin) {
		return
	}
	cur := origin
	for {
		next, ok := StepInWalk(cur, origin)
		if !ok {
			return
		}
		if !visit(next) {
			return
		}
		cur = next
	}
}
