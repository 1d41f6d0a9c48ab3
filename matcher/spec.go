package matcher

import (
	"github.com/synaptree/semtrex/nfa"
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

// symbolMatches evaluates a KindSymbol state's payload against
// node.Symbol. st.Spec is either a cloned SEMTREX_SYMBOL
// node (a single identifier in its Surface) or a SEMTREX_SYMBOL_SET node
// whose children are SEMTREX_SYMBOL nodes.
func symbolMatches(st *nfa.State, node *tree.Node) bool {
	matched := false
	if st.Flags.Set {
		for _, c := range st.Spec.Children() {
			if c.Surface.Ident == node.Symbol {
				matched = true
				break
			}
		}
	} else {
		matched = st.Spec.Surface.Ident == node.Symbol
	}
	if st.Flags.Not {
		matched = !matched
	}
	return matched
}

// valueMatches evaluates a KindValue state's payload against node's
// (symbol, surface) pair jointly. st.Spec is a cloned
// SEMTREX_SYMBOL node (Surface = the symbol to match) with one child: a
// bare value leaf, or a SEMTREX_VALUE_SET node whose children are value
// leaves.
func valueMatches(st *nfa.State, node *tree.Node) bool {
	matched := st.Spec.Surface.Ident == node.Symbol
	if matched {
		valSpec, _ := st.Spec.ChildAt(1)
		if st.Flags.Set {
			matched = false
			for _, v := range valSpec.Children() {
				if v.Surface.Equal(node.Surface) {
					matched = true
					break
				}
			}
		} else {
			matched = valSpec.Surface.Equal(node.Surface)
		}
	}
	if st.Flags.Not {
		matched = !matched
	}
	return matched
}

func sysSym(id int) symbol.Id {
	return symbol.Id{Context: 0, Kind: symbol.SYMBOL, Num: id}
}
