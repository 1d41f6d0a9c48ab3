package matcher

import (
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

// Capture is one completed capture group: the group's symbol, the path
// (from the matched tree's root) to its first matched node, how many
// consecutive siblings it spans, and any nested captures in pre-order.
type Capture struct {
	Symbol        symbol.Id
	Path          tree.Path
	SiblingsCount int
	Children      []Capture
}

// openCapture is a capture group still awaiting its GroupClose.
type openCapture struct {
	symbol    symbol.Id
	startPath tree.Path
	startNode *tree.Node
	children  []Capture
}

func cloneCaptures(cs []Capture) []Capture {
	if cs == nil {
		return nil
	}
	out := make([]Capture, len(cs))
	for i, c := range cs {
		out[i] = Capture{
			Symbol:        c.Symbol,
			Path:          append(tree.Path(nil), c.Path...),
			SiblingsCount: c.SiblingsCount,
			Children:      cloneCaptures(c.Children),
		}
	}
	return out
}

func cloneOpens(os []openCapture) []openCapture {
	if os == nil {
		return nil
	}
	out := make([]openCapture, len(os))
	for i, o := range os {
		out[i] = openCapture{
			symbol:    o.symbol,
			startPath: append(tree.Path(nil), o.startPath...),
			startNode: o.startNode,
			children:  cloneCaptures(o.children),
		}
	}
	return out
}

// siblingsCount is the number of siblings a capture spans, derived from its
// start node and the cursor at group close. When the walk reaches end, the
// step count already excludes end itself (the cursor has moved one past the
// last matched node); when the siblings run out first (end is null or in
// another subtree) every node from start through the last sibling was
// matched, so the final node is counted too. Floor of 1 either way. The
// sibling walk is the single source of truth for every case (same parent,
// end past the last sibling, end null); a same-parent index-difference
// shortcut is deliberately not used as a separate path, since the walk
// already produces the right answer there and a second heuristic would only
// risk disagreeing with this one at the nested-repetition edge cases.
func siblingsCount(start, end *tree.Node) int {
	if start == nil {
		return 1
	}
	count := 0
	cur := start
	for cur != end {
		next, ok := cur.NextSibling()
		if !ok {
			count++
			break
		}
		cur = next
		count++
	}
	if count < 1 {
		count = 1
	}
	return count
}
