package nfa

import (
	"fmt"

	"github.com/synaptree/semtrex/pattern"
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

// Builder lowers a pattern tree into an Automaton. The zero value is ready
// to use; call Build once per pattern tree. Build resets the group-id
// counter and state arena itself, so a single Builder may be reused across
// several unrelated patterns, but never concurrently.
type Builder struct {
	states       []State
	groupCounter int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Build compiles pattern into an Automaton. level starts at 0 and is
// restored to 0 by the time Build returns, so the final patch to the shared
// accept state always uses targetLevel 0.
func (b *Builder) Build(pat *tree.Node) (*Automaton, error) {
	b.states = nil
	b.groupCounter = 0
	frag, err := b.build(pat, 0)
	if err != nil {
		return nil, err
	}
	accept := b.newState(KindMatch)
	b.patch(frag.outs, accept, 0)
	tracer().Debugf("built automaton: %d states, start=%d, accept=%d", len(b.states), frag.start, accept)
	return &Automaton{States: b.states, Start: frag.start, Accept: accept}, nil
}

func (b *Builder) newState(k Kind) int {
	idx := len(b.states)
	b.states = append(b.states, State{Kind: k, Out: NoSuccessor, Out1: NoSuccessor})
	return idx
}

// patch connects every slot in outs to targetStart, computing each slot's
// final transition as (slot.level - targetLevel): the number of levels the
// cursor must pop before advancing to the sibling the target expects. A
// zero result on a non-consuming slot is
// rewritten to TransNone, since such a state never legitimately advances the
// cursor on its own.
func (b *Builder) patch(outs interface{ Values() []interface{} }, targetStart, targetLevel int) {
	for _, v := range outs.Values() {
		slot := v.(outSlot)
		trans := slot.level - targetLevel
		if slot.nonConsuming && trans == 0 {
			trans = TransNone
		}
		st := &b.states[slot.state]
		if slot.which == 0 {
			st.Out, st.OutT = targetStart, trans
		} else {
			st.Out1, st.Out1T = targetStart, trans
		}
	}
}

func (b *Builder) build(n *tree.Node, level int) (Fragment, error) {
	switch n.Symbol.Num {
	case symbol.SEMTREX_SEQUENCE:
		return b.buildSequence(n, level)
	case symbol.SEMTREX_OR:
		return b.buildOr(n, level)
	case symbol.SEMTREX_ZERO_OR_MORE:
		return b.buildZeroOrMore(n, level)
	case symbol.SEMTREX_ONE_OR_MORE:
		return b.buildOneOrMore(n, level)
	case symbol.SEMTREX_ZERO_OR_ONE:
		return b.buildZeroOrOne(n, level)
	case symbol.SEMTREX_GROUP:
		return b.buildGroup(n, level)
	case symbol.SEMTREX_DESCEND:
		return b.buildDescend(n, level)
	case symbol.SEMTREX_WALK:
		return b.buildWalk(n, level)
	case symbol.SEMTREX_NOT:
		return b.buildNot(n, level)
	case symbol.SEMTREX_SYMBOL_LITERAL:
		return b.buildSymbolLiteral(n, level, false)
	case symbol.SEMTREX_SYMBOL_LITERAL_NOT:
		return b.buildSymbolLiteral(n, level, true)
	case symbol.SEMTREX_SYMBOL_ANY:
		return b.buildAny(n, level)
	case symbol.SEMTREX_VALUE_LITERAL:
		return b.buildValueLiteral(n, level, false)
	case symbol.SEMTREX_VALUE_LITERAL_NOT:
		return b.buildValueLiteral(n, level, true)
	default:
		return Fragment{}, pattern.BadArity{
			Op: fmt.Sprintf("symbol#%d", n.Symbol.Num), Got: n.ChildCount(),
			Expected: "a known SEMTREX_* pattern operator",
		}
	}
}

func (b *Builder) buildSequence(n *tree.Node, level int) (Fragment, error) {
	count := n.ChildCount()
	if count < 1 {
		return Fragment{}, pattern.BadArity{Op: "SEQUENCE", Got: count, Expected: ">=1"}
	}
	frags := make([]Fragment, count)
	for i := 0; i < count; i++ {
		c, _ := n.ChildAt(i + 1)
		f, err := b.build(c, level)
		if err != nil {
			return Fragment{}, err
		}
		frags[i] = f
	}
	for i := 0; i < count-1; i++ {
		b.patch(frags[i].outs, frags[i+1].start, level)
	}
	return Fragment{start: frags[0].start, outs: frags[count-1].outs}, nil
}

func (b *Builder) buildOr(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 2 {
		return Fragment{}, pattern.BadArity{Op: "OR", Got: n.ChildCount(), Expected: "2"}
	}
	ac, _ := n.ChildAt(1)
	bc, _ := n.ChildAt(2)
	af, err := b.build(ac, level)
	if err != nil {
		return Fragment{}, err
	}
	bf, err := b.build(bc, level)
	if err != nil {
		return Fragment{}, err
	}
	split := b.newState(KindSplit)
	b.states[split].Out, b.states[split].OutT = af.start, TransNone
	b.states[split].Out1, b.states[split].Out1T = bf.start, TransNone
	return Fragment{start: split, outs: mergeOuts(af.outs, bf.outs)}, nil
}

func (b *Builder) buildZeroOrMore(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 1 {
		return Fragment{}, pattern.BadArity{Op: "ZERO_OR_MORE", Got: n.ChildCount(), Expected: "1"}
	}
	ec, _ := n.ChildAt(1)
	ef, err := b.build(ec, level)
	if err != nil {
		return Fragment{}, err
	}
	split := b.newState(KindSplit)
	b.states[split].Out, b.states[split].OutT = ef.start, TransNone
	b.patch(ef.outs, split, level)
	return Fragment{start: split, outs: singleOut(split, 1, level, true)}, nil
}

func (b *Builder) buildOneOrMore(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 1 {
		return Fragment{}, pattern.BadArity{Op: "ONE_OR_MORE", Got: n.ChildCount(), Expected: "1"}
	}
	ec, _ := n.ChildAt(1)
	ef, err := b.build(ec, level)
	if err != nil {
		return Fragment{}, err
	}
	split := b.newState(KindSplit)
	b.states[split].Out, b.states[split].OutT = ef.start, TransNone
	b.patch(ef.outs, split, level)
	return Fragment{start: ef.start, outs: singleOut(split, 1, level, true)}, nil
}

func (b *Builder) buildZeroOrOne(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 1 {
		return Fragment{}, pattern.BadArity{Op: "ZERO_OR_ONE", Got: n.ChildCount(), Expected: "1"}
	}
	ec, _ := n.ChildAt(1)
	ef, err := b.build(ec, level)
	if err != nil {
		return Fragment{}, err
	}
	split := b.newState(KindSplit)
	b.states[split].Out, b.states[split].OutT = ef.start, TransNone
	return Fragment{start: split, outs: mergeOuts(ef.outs, singleOut(split, 1, level, true))}, nil
}

func (b *Builder) buildGroup(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 1 {
		return Fragment{}, pattern.BadArity{Op: "GROUP", Got: n.ChildCount(), Expected: "1"}
	}
	body, _ := n.ChildAt(1)
	bf, err := b.build(body, level)
	if err != nil {
		return Fragment{}, err
	}
	open := b.newState(KindGroupOpen)
	b.groupCounter++
	gid := b.groupCounter
	b.states[open].GroupId = gid
	b.states[open].CaptureSymbol = n.Surface.Ident
	b.states[open].Out, b.states[open].OutT = bf.start, TransNone

	closeSt := b.newState(KindGroupClose)
	b.states[closeSt].OpenID = gid
	b.patch(bf.outs, closeSt, level)

	return Fragment{start: open, outs: singleOut(closeSt, 0, level, true)}, nil
}

func (b *Builder) buildDescend(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 1 {
		return Fragment{}, pattern.BadArity{Op: "DESCEND", Got: n.ChildCount(), Expected: "1"}
	}
	ec, _ := n.ChildAt(1)
	ef, err := b.build(ec, level-1)
	if err != nil {
		return Fragment{}, err
	}
	st := b.newState(KindDescend)
	b.states[st].Out, b.states[st].OutT = ef.start, 1
	return Fragment{start: st, outs: ef.outs}, nil
}

func (b *Builder) buildWalk(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 1 {
		return Fragment{}, pattern.BadArity{Op: "WALK", Got: n.ChildCount(), Expected: "1"}
	}
	ec, _ := n.ChildAt(1)
	ef, err := b.build(ec, level)
	if err != nil {
		return Fragment{}, err
	}
	st := b.newState(KindWalk)
	b.states[st].Out, b.states[st].OutT = ef.start, TransNone
	return Fragment{start: st, outs: ef.outs}, nil
}

func (b *Builder) buildNot(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() != 1 {
		return Fragment{}, pattern.BadArity{Op: "NOT", Got: n.ChildCount(), Expected: "1"}
	}
	ec, _ := n.ChildAt(1)
	ef, err := b.build(ec, level)
	if err != nil {
		return Fragment{}, err
	}
	// The inner pattern terminates at its own private Match state rather than
	// bubbling its exits into the surrounding fragment: the matcher runs a
	// Not's body as an isolated sub-match and needs a self-contained
	// subgraph with its own success signal, independent of whatever state
	// happens to follow the Not in the enclosing pattern.
	subAccept := b.newState(KindMatch)
	b.patch(ef.outs, subAccept, level)

	st := b.newState(KindNot)
	b.states[st].Out, b.states[st].OutT = ef.start, TransNone
	return Fragment{start: st, outs: singleOut(st, 1, level, true)}, nil
}

func (b *Builder) buildAny(n *tree.Node, level int) (Fragment, error) {
	if n.ChildCount() > 1 {
		return Fragment{}, pattern.BadArity{Op: "SYMBOL_ANY", Got: n.ChildCount(), Expected: "0 or 1"}
	}
	st := b.newState(KindAny)
	if n.ChildCount() == 1 {
		ic, _ := n.ChildAt(1)
		inner, err := b.build(ic, level-1)
		if err != nil {
			return Fragment{}, err
		}
		b.states[st].Out, b.states[st].OutT = inner.start, 1
		return Fragment{start: st, outs: inner.outs}, nil
	}
	return Fragment{start: st, outs: singleOut(st, 0, level, false)}, nil
}

func (b *Builder) buildSymbolLiteral(n *tree.Node, level int, negate bool) (Fragment, error) {
	kids := n.ChildCount()
	if kids != 1 && kids != 2 {
		return Fragment{}, pattern.BadArity{Op: "SYMBOL_LITERAL", Got: kids, Expected: "1 or 2"}
	}
	specChild, _ := n.ChildAt(1)
	isSet := specChild.Symbol.Num == symbol.SEMTREX_SYMBOL_SET

	st := b.newState(KindSymbol)
	b.states[st].Flags = Flags{Not: negate, Set: isSet}
	b.states[st].Spec = tree.Clone(specChild)

	if kids == 2 {
		dc, _ := n.ChildAt(2)
		inner, err := b.build(dc, level-1)
		if err != nil {
			return Fragment{}, err
		}
		b.states[st].Out, b.states[st].OutT = inner.start, 1
		return Fragment{start: st, outs: inner.outs}, nil
	}
	return Fragment{start: st, outs: singleOut(st, 0, level, false)}, nil
}

func (b *Builder) buildValueLiteral(n *tree.Node, level int, negate bool) (Fragment, error) {
	if n.ChildCount() != 2 {
		return Fragment{}, pattern.BadArity{Op: "VALUE_LITERAL", Got: n.ChildCount(), Expected: "2"}
	}
	symChild, _ := n.ChildAt(1)
	valChild, _ := n.ChildAt(2)
	isSet := valChild.Symbol.Num == symbol.SEMTREX_VALUE_SET

	st := b.newState(KindValue)
	b.states[st].Flags = Flags{Not: negate, Set: isSet}
	spec := tree.Clone(symChild)
	tree.AddChild(spec, tree.Clone(valChild))
	b.states[st].Spec = spec

	return Fragment{start: st, outs: singleOut(st, 0, level, false)}, nil
}
