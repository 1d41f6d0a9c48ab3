package tree

import (
	"fmt"

	"github.com/cnf/structhash"
)

// hashable is the flattened shape structhash.Hash is given: the node's own
// identity plus the recursively-hashed shape of its children.
type hashable struct {
	Symbol   string
	Surface  string
	Children []string
}

// Hash computes a stable content hash of n and its subtree: two subtrees
// hash equal iff they are structurally identical (same symbols, same
// surfaces, same shape).
func Hash(n *Node) (string, error) {
	if n == nil {
		return structhash.Hash(hashable{Symbol: "<nil>"}, 1)
	}
	childHashes := make([]string, 0, n.ChildCount())
	for _, c := range n.children {
		h, err := Hash(c)
		if err != nil {
			return "", err
		}
		childHashes = append(childHashes, h)
	}
	surface := n.Surface.String()
	if n.Surface.Tag == SurfaceBytes {
		// Surface.String shows only a blob's length; hash its content.
		surface = fmt.Sprintf("<blob:%x>", n.Surface.Bytes)
	}
	return structhash.Hash(hashable{
		Symbol:   n.Symbol.String(),
		Surface:  surface,
		Children: childHashes,
	}, 1)
}
