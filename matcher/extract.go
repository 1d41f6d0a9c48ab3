package matcher

import (
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

// GetMatchBySymbol searches results depth-first (pre-order) for the first
// capture tagged with sym.
func GetMatchBySymbol(results []Capture, sym symbol.Id) (Capture, bool) {
	for _, c := range results {
		if c.Symbol == sym {
			return c, true
		}
		if found, ok := GetMatchBySymbol(c.Children, sym); ok {
			return found, true
		}
	}
	return Capture{}, false
}

// GetMatchedNodes resolves result.Path against root and returns the
// contiguous slice of result.SiblingsCount nodes it spans, walking
// NextSibling from the resolved start node.
func GetMatchedNodes(root *tree.Node, result Capture) []*tree.Node {
	start, ok := tree.GetByPath(root, result.Path)
	if !ok {
		return nil
	}
	count := result.SiblingsCount
	if count < 1 {
		count = 1
	}
	nodes := make([]*tree.Node, 0, count)
	nodes = append(nodes, start)
	cur := start
	for i := 1; i < count; i++ {
		next, ok := cur.NextSibling()
		if !ok {
			break
		}
		nodes = append(nodes, next)
		cur = next
	}
	return nodes
}
