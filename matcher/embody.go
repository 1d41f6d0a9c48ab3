package matcher

import (
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

// EmbodyFromMatch rebuilds a tree from a match's captures. A single
// top-level capture becomes a node tagged with that capture's symbol;
// multiple top-level captures are wrapped under a root tagged with the
// first capture's symbol. An empty capture set yields nil.
func EmbodyFromMatch(captures []Capture, root *tree.Node) *tree.Node {
	if len(captures) == 0 {
		return nil
	}
	if len(captures) == 1 {
		return embodyOne(captures[0], root)
	}
	wrapper := tree.New(captures[0].Symbol, tree.Null)
	for _, c := range captures {
		tree.AddChild(wrapper, embodyOne(c, root))
	}
	return wrapper
}

// embodyOne builds the node for a single capture. Nested captures recurse
// first; otherwise the capture's surface is the matched leaf's surface when
// a single childless node matched, and clones of the matched nodes
// otherwise.
func embodyOne(c Capture, root *tree.Node) *tree.Node {
	n := tree.New(c.Symbol, tree.Null)
	if len(c.Children) > 0 {
		for _, nested := range c.Children {
			tree.AddChild(n, embodyOne(nested, root))
		}
		return n
	}
	nodes := GetMatchedNodes(root, c)
	if len(nodes) == 1 && nodes[0].ChildCount() == 0 {
		n.Surface = nodes[0].Surface
		return n
	}
	for _, m := range nodes {
		tree.AddChild(n, tree.Clone(m))
	}
	return n
}

// StxReplace replaces, for every top-level capture, the node its path
// addresses with a deep clone of replacement. Replacement is done via
// Morph+ReplaceNode rather than detach/insert so that a matched node's
// identity (and hence the paths of any other, unrelated captures) survives
// even when several captures share a parent.
func StxReplace(root *tree.Node, captures []Capture, replacement *tree.Node) {
	for _, c := range captures {
		target, ok := tree.GetByPath(root, c.Path)
		if !ok {
			continue
		}
		clone := tree.Clone(replacement)
		tree.Morph(target, clone)
		tree.ReplaceNode(target, clone)
	}
}

// MatchResultsToSemMap builds a SEMANTIC_MAP node with one SEMANTIC_LINK
// child per capture, each link holding a USAGE node (surface = the
// capture's symbol) and a REPLACEMENT_VALUE node whose children are clones
// of the matched nodes. Nested captures are flattened depth-first into
// the same map, alongside their enclosing capture's link.
func MatchResultsToSemMap(captures []Capture, root *tree.Node) *tree.Node {
	m := tree.New(sysSym(symbol.SEMANTIC_MAP), tree.Null)
	var flatten func([]Capture)
	flatten = func(cs []Capture) {
		for _, c := range cs {
			link := tree.NewChild(m, sysSym(symbol.SEMANTIC_LINK), tree.Null)
			tree.NewChild(link, sysSym(symbol.USAGE), tree.IdentSurface(c.Symbol))
			repl := tree.NewChild(link, sysSym(symbol.REPLACEMENT_VALUE), tree.Null)
			for _, node := range GetMatchedNodes(root, c) {
				tree.AddChild(repl, tree.Clone(node))
			}
			flatten(c.Children)
		}
	}
	flatten(captures)
	return m
}
