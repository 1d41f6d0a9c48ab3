package nfa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptree/semtrex/nfa"
	"github.com/synaptree/semtrex/pattern"
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

func regWith(t *testing.T, labels ...string) *symbol.Registry {
	t.Helper()
	reg := symbol.NewRegistry()
	reg.RegisterBuiltins()
	for _, l := range labels {
		reg.DefineSymbol(0, symbol.NullStructure, l)
	}
	return reg
}

func compile(t *testing.T, reg *symbol.Registry, src string) *nfa.Automaton {
	t.Helper()
	p := pattern.NewParser(reg)
	pat, err := p.Parse(src)
	require.NoError(t, err)
	b := nfa.NewBuilder()
	a, err := b.Build(pat)
	require.NoError(t, err)
	return a
}

func TestBuildSimpleLiteralReachesAccept(t *testing.T) {
	reg := regWith(t, "TASK")
	a := compile(t, reg, "/TASK")
	require.GreaterOrEqual(t, len(a.States), 2)
	start := a.State(a.Start)
	assert.Equal(t, nfa.KindSymbol, start.Kind)
	assert.Equal(t, a.Accept, start.Out)
	assert.Equal(t, 0, start.OutT)
}

func TestBuildDescentSequenceProducesLevelCorrectedExit(t *testing.T) {
	reg := regWith(t, "TASK", "TITLE", "STATUS")
	a := compile(t, reg, "/TASK/(TITLE,STATUS)")

	task := a.State(a.Start)
	require.Equal(t, nfa.KindSymbol, task.Kind)
	assert.Equal(t, 1, task.OutT, "descend into TASK's children is a fixed +1")

	title := a.State(task.Out)
	require.Equal(t, nfa.KindSymbol, title.Kind)
	assert.Equal(t, 0, title.OutT, "TITLE and STATUS are siblings at the same level")

	status := a.State(title.Out)
	require.Equal(t, nfa.KindSymbol, status.Kind)
	assert.Equal(t, -1, status.OutT, "after the last child, pop back up one level to TASK's own level")
	assert.Equal(t, a.Accept, status.Out)
}

func TestBuildZeroOrMoreLoopsBackToSplit(t *testing.T) {
	reg := regWith(t, "P", "A")
	a := compile(t, reg, "/P/A*")

	p := a.State(a.Start)
	assert.Equal(t, 1, p.OutT, "descend into P's children is a fixed +1")
	split := a.State(p.Out)
	require.Equal(t, nfa.KindSplit, split.Kind)

	body := a.State(split.Out)
	require.Equal(t, nfa.KindSymbol, body.Kind)
	assert.Equal(t, nfa.TransNone, split.OutT, "entering the loop body is a fixed structural redirect")
	assert.Equal(t, p.Out, body.Out, "A loops back to the split it came from")
	assert.Equal(t, 0, body.OutT, "A is a sibling of itself across loop iterations, so it just advances")

	assert.Equal(t, a.Accept, split.Out1)
	assert.Equal(t, -1, split.Out1T, "leaving the loop pops back up out of A's descended level")
}

func TestBuildGroupWiresOpenAndClose(t *testing.T) {
	reg := regWith(t, "P", "A")
	a := compile(t, reg, "/P/<G:A>")

	p := a.State(a.Start)
	open := a.State(p.Out)
	require.Equal(t, nfa.KindGroupOpen, open.Kind)
	assert.Equal(t, 1, open.GroupId)
	gLit, ok := reg.SymbolByName("G")
	require.True(t, ok)
	assert.Equal(t, gLit, open.CaptureSymbol)

	lit := a.State(open.Out)
	require.Equal(t, nfa.KindSymbol, lit.Kind)
	closeSt := a.State(lit.Out)
	require.Equal(t, nfa.KindGroupClose, closeSt.Kind)
	assert.Equal(t, open.GroupId, closeSt.OpenID)
}

func TestBuildOrSplitsToBothBranches(t *testing.T) {
	reg := regWith(t, "A", "B")
	a := compile(t, reg, "/A|B")
	split := a.State(a.Start)
	require.Equal(t, nfa.KindSplit, split.Kind)
	left := a.State(split.Out)
	right := a.State(split.Out1)
	assert.Equal(t, nfa.KindSymbol, left.Kind)
	assert.Equal(t, nfa.KindSymbol, right.Kind)
	assert.Equal(t, a.Accept, left.Out)
	assert.Equal(t, a.Accept, right.Out)
}

func TestBuildNotWiresIsolatedBodyAndContinuation(t *testing.T) {
	reg := regWith(t, "A")
	a := compile(t, reg, "/~A")
	notSt := a.State(a.Start)
	require.Equal(t, nfa.KindNot, notSt.Kind)
	body := a.State(notSt.Out)
	assert.Equal(t, nfa.KindSymbol, body.Kind)
	assert.Equal(t, a.Accept, notSt.Out1)
}

func TestBuildUnknownOperatorIsBadArity(t *testing.T) {
	bogus := tree.New(symbol.Id{Context: 0, Kind: symbol.SYMBOL, Num: 999}, tree.Null)
	b := nfa.NewBuilder()
	_, err := b.Build(bogus)
	var ba pattern.BadArity
	require.ErrorAs(t, err, &ba)
}

func TestBuildSequenceArityZeroIsBadArity(t *testing.T) {
	seq := tree.New(symbol.Id{Context: 0, Kind: symbol.SYMBOL, Num: symbol.SEMTREX_SEQUENCE}, tree.Null)
	b := nfa.NewBuilder()
	_, err := b.Build(seq)
	var ba pattern.BadArity
	require.ErrorAs(t, err, &ba)
	assert.Equal(t, "SEQUENCE", ba.Op)
}
