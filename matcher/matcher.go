/*
Package matcher executes a compiled semtrex automaton (an nfa.Automaton)
against a target semantic tree, walking the state graph with explicit
backtracking while tracking capture-group boundaries. It never mutates the
automaton or the target tree it is given; every Match call builds its own
branch-point stack and capture bookkeeping from scratch.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package matcher

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"

	"github.com/synaptree/semtrex/nfa"
	"github.com/synaptree/semtrex/tree"
)

func tracer() tracing.Trace {
	return tracing.Select("semtrex.matcher")
}

// branchKind discriminates the two kinds of backtrack point the matcher
// pushes: a Split's untaken alternative, and a Walk's still-unvisited
// candidate nodes.
type branchKind int

const (
	branchSplit branchKind = iota
	branchWalk
)

// branch is one entry of the explicit backtracking stack. Split frames
// record the untaken successor and a snapshot of both capture structures at
// push time, so backtracking into them discards whatever the taken branch
// did. Walk frames record the DFS queue of candidate nodes still to try;
// queue is an *arraylist.List of *tree.Node.
type branch struct {
	kind branchKind

	// branchSplit
	state     int
	trans     int
	cur       cursor
	opensSnap []openCapture
	doneSnap  []Capture

	// branchWalk
	queue      *arraylist.List
	idx        int
	innerState int
	opensBase  []openCapture
	doneBase   []Capture
}

// Match executes the automaton against the tree rooted at root and returns
// whether it matched, together with the top-level completed capture groups
// in pre-order.
func Match(a *nfa.Automaton, root *tree.Node) (bool, []Capture) {
	return run(a, a.Start, rootCursor(root))
}

// MatchBool is Match without the capture payload. It reports true exactly
// when Match does, since both share the same driver.
func MatchBool(a *nfa.Automaton, root *tree.Node) bool {
	ok, _ := Match(a, root)
	return ok
}

// run drives the backtracking state machine starting at state with cursor
// cur. It is also the engine behind KindNot's isolated sub-match.
func run(a *nfa.Automaton, start int, from cursor) (bool, []Capture) {
	state := start
	cur := from

	var opens []openCapture
	var done []Capture
	var stack []branch

	for {
		st := a.State(state)
		advanced := false

		switch st.Kind {
		case nfa.KindMatch:
			tracer().Debugf("match reached at cursor=%v", cur)
			return true, done

		case nfa.KindSymbol:
			if cur.node != nil && symbolMatches(st, cur.node) {
				if nc, ok := cur.move(st.OutT); ok {
					cur, state, advanced = nc, st.Out, true
				}
			}

		case nfa.KindAny:
			if cur.node != nil {
				if nc, ok := cur.move(st.OutT); ok {
					cur, state, advanced = nc, st.Out, true
				}
			}

		case nfa.KindValue:
			if cur.node != nil && valueMatches(st, cur.node) {
				if nc, ok := cur.move(st.OutT); ok {
					cur, state, advanced = nc, st.Out, true
				}
			}

		case nfa.KindSplit:
			stack = append(stack, branch{
				kind: branchSplit, state: st.Out1, trans: st.Out1T, cur: cur,
				opensSnap: cloneOpens(opens), doneSnap: cloneCaptures(done),
			})
			if nc, ok := cur.move(st.OutT); ok {
				cur, state, advanced = nc, st.Out, true
			}

		case nfa.KindGroupOpen:
			opens = append(opens, openCapture{
				symbol:    st.CaptureSymbol,
				startPath: pathOf(cur.node),
				startNode: cur.node,
			})
			nc, _ := cur.move(st.OutT)
			cur, state, advanced = nc, st.Out, true

		case nfa.KindGroupClose:
			if len(opens) > 0 {
				top := opens[len(opens)-1]
				opens = opens[:len(opens)-1]
				completed := Capture{
					Symbol:        top.symbol,
					Path:          top.startPath,
					SiblingsCount: siblingsCount(top.startNode, cur.node),
					Children:      top.children,
				}
				if len(opens) > 0 {
					opens[len(opens)-1].children = append(opens[len(opens)-1].children, completed)
				} else {
					done = append(done, completed)
				}
			}
			nc, _ := cur.move(st.OutT)
			cur, state, advanced = nc, st.Out, true

		case nfa.KindDescend:
			if cur.node != nil {
				if nc, ok := cur.move(st.OutT); ok {
					cur, state, advanced = nc, st.Out, true
				}
			}

		case nfa.KindWalk:
			queue := arraylist.New()
			tree.Walk(cur.node, func(n *tree.Node) bool {
				queue.Add(n)
				return true
			})
			stack = append(stack, branch{
				kind: branchWalk, queue: queue, idx: -1, innerState: st.Out,
				opensBase: cloneOpens(opens), doneBase: cloneCaptures(done),
			})
			// fall through to the shared backtrack logic below, which
			// advances idx from -1 to 0 and tries the first (shallowest,
			// left-most) candidate, the origin itself.

		case nfa.KindNot:
			sub, _ := run(a, st.Out, cur)
			if !sub {
				if nc, ok := cur.move(st.Out1T); ok {
					cur, state, advanced = nc, st.Out1, true
				}
			}

		default:
			tracer().Errorf("unknown automaton state kind %v", st.Kind)
		}

		if advanced {
			continue
		}

		// --- backtrack ------------------------------------------------------
		for {
			if len(stack) == 0 {
				return false, nil
			}
			top := &stack[len(stack)-1]
			switch top.kind {
			case branchSplit:
				b := *top
				stack = stack[:len(stack)-1]
				opens, done = b.opensSnap, b.doneSnap
				if nc, ok := b.cur.move(b.trans); ok {
					cur, state = nc, b.state
					goto resumed
				}
				// untaken branch's own motion is impossible; keep backtracking
			case branchWalk:
				top.idx++
				if top.idx >= top.queue.Size() {
					stack = stack[:len(stack)-1]
					continue
				}
				opens = cloneOpens(top.opensBase)
				done = cloneCaptures(top.doneBase)
				next, _ := top.queue.Get(top.idx)
				cur = cursor{node: next.(*tree.Node), parent: next.(*tree.Node).Parent()}
				state = top.innerState
				goto resumed
			}
		}
	resumed:
	}
}

func pathOf(n *tree.Node) tree.Path {
	if n == nil {
		return nil
	}
	return tree.GetPath(n)
}
