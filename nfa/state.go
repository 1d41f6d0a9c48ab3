/*
Package nfa lowers a semtrex pattern tree into a Thompson-style
state graph with depth-aware transitions. States live in a flat arena
addressed by integer id, so the cyclic successor graph (quantifier and walk
loops) never forms an ownership cycle.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package nfa

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

func tracer() tracing.Trace {
	return tracing.Select("semtrex.nfa")
}

// Kind discriminates an automaton state's role.
type Kind int

const (
	KindSymbol Kind = iota
	KindAny
	KindValue
	KindSplit
	KindMatch
	KindGroupOpen
	KindGroupClose
	KindDescend
	KindWalk
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "Symbol"
	case KindAny:
		return "Any"
	case KindValue:
		return "Value"
	case KindSplit:
		return "Split"
	case KindMatch:
		return "Match"
	case KindGroupOpen:
		return "GroupOpen"
	case KindGroupClose:
		return "GroupClose"
	case KindDescend:
		return "Descend"
	case KindWalk:
		return "Walk"
	case KindNot:
		return "Not"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TransNone is the reserved sentinel transition value meaning "do not move
// the cursor". It is chosen far outside the range any real level delta
// or descend count can reach.
const TransNone = math.MinInt32

// NoSuccessor marks an unused Out/Out1 slot.
const NoSuccessor = -1

// Flags carries the NOT/SET discriminators for Symbol/Value states.
type Flags struct {
	Not bool
	Set bool
}

// State is one node of the automaton graph. Out/Out1 index into the
// owning Automaton's States slice; OutT/Out1T are the transitions attached
// to those successors. GroupOpen carries (CaptureSymbol, GroupId); GroupClose
// carries OpenID, a back-reference to its GroupOpen's GroupId.
type State struct {
	Kind Kind

	Out   int
	OutT  int
	Out1  int
	Out1T int

	Flags Flags
	Spec  *tree.Node // cloned SEMTREX_SYMBOL/SEMTREX_SYMBOL_SET or value subtree

	CaptureSymbol symbol.Id
	GroupId       int
	OpenID        int
}
