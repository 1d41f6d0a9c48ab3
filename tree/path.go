package tree

import (
	"fmt"
	"strings"
)

// Path is an ordered sequence of 1-indexed child positions from a tree's
// root. The empty path denotes the root itself.
type Path []int

// RootPath is the empty path.
func RootPath() Path { return Path{} }

// Equal reports whether two paths address the same node.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Less reports whether p sorts lexicographically before o. A pre-order
// traversal visits nodes in ascending path order.
func (p Path) Less(o Path) bool {
	for i := 0; i < len(p) && i < len(o); i++ {
		if p[i] != o[i] {
			return p[i] < o[i]
		}
	}
	return len(p) < len(o)
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "/" + strings.Join(parts, "/")
}

// GetPath returns the path from root to n, walking parent pointers. n must
// be reachable from a root (or be the root itself).
func GetPath(n *Node) Path {
	var rev []int
	for cur := n; cur.parent != nil; cur = cur.parent {
		idx, ok := cur.NodeIndex()
		if !ok {
			break
		}
		rev = append(rev, idx)
	}
	path := make(Path, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

// GetByPath navigates root by path, strictly: any out-of-range index yields
// (nil, false).
func GetByPath(root *Node, path Path) (*Node, bool) {
	cur := root
	for _, idx := range path {
		next, ok := cur.ChildAt(idx)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// PathEqual is a convenience wrapper around Path.Equal.
func PathEqual(a, b Path) bool {
	return a.Equal(b)
}
