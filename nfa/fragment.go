package nfa

import "github.com/emirpasic/gods/lists/arraylist"

// outSlot is one not-yet-patched successor of a fragment under construction.
// level is the builder's level at the moment this slot was minted (i.e. how
// many DESCEND/descent-sugar recursions deep it sits); nonConsuming marks
// slots belonging to a structural (non-cursor-consuming) state, whose
// transition must become TransNone rather than 0 when no level correction is
// needed, since a literal 0 would advance the cursor to the next sibling.
type outSlot struct {
	state        int
	which        int // 0 = Out/OutT, 1 = Out1/Out1T
	level        int
	nonConsuming bool
}

// Fragment is a partially built piece of the automaton: a start state and a
// list of dangling successor slots, its outputs. Composition
// concatenates fragments by patching one fragment's outs to the next
// fragment's start.
type Fragment struct {
	start int
	outs  *arraylist.List
}

func newFragment(start int) Fragment {
	return Fragment{start: start, outs: arraylist.New()}
}

func singleOut(state, which, level int, nonConsuming bool) *arraylist.List {
	l := arraylist.New()
	l.Add(outSlot{state: state, which: which, level: level, nonConsuming: nonConsuming})
	return l
}

func mergeOuts(lists ...*arraylist.List) *arraylist.List {
	out := arraylist.New()
	for _, l := range lists {
		if l == nil {
			continue
		}
		out.Add(l.Values()...)
	}
	return out
}
