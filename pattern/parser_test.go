package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptree/semtrex/pattern"
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

func newTestRegistry(t *testing.T, labels ...string) *symbol.Registry {
	t.Helper()
	reg := symbol.NewRegistry()
	reg.RegisterBuiltins()
	for _, l := range labels {
		reg.DefineSymbol(0, symbol.NullStructure, l)
	}
	return reg
}

func opLabel(t *testing.T, reg *symbol.Registry, n *tree.Node) string {
	t.Helper()
	label, ok := reg.LabelOf(n.Symbol)
	require.True(t, ok, "node symbol %v has no registered label", n.Symbol)
	return label
}

func TestParserSimpleSymbolLiteral(t *testing.T) {
	reg := newTestRegistry(t, "TASK")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/TASK")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL", opLabel(t, reg, n))
	require.Equal(t, 1, n.ChildCount())
	sym, _ := n.ChildAt(1)
	assert.Equal(t, "SEMTREX_SYMBOL", opLabel(t, reg, sym))
	id, ok := reg.SymbolByName("TASK")
	require.True(t, ok)
	assert.True(t, sym.Surface.Equal(tree.IdentSurface(id)))
}

func TestParserSequenceAndDescentSugar(t *testing.T) {
	reg := newTestRegistry(t, "TASK", "TITLE", "STATUS")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/TASK/(TITLE,STATUS)")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL", opLabel(t, reg, n))
	require.Equal(t, 2, n.ChildCount())
	descentBody, _ := n.ChildAt(2)
	assert.Equal(t, "SEMTREX_SEQUENCE", opLabel(t, reg, descentBody))
	require.Equal(t, 2, descentBody.ChildCount())
	c1, _ := descentBody.ChildAt(1)
	c2, _ := descentBody.ChildAt(2)
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL", opLabel(t, reg, c1))
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL", opLabel(t, reg, c2))
}

func TestParserAnyAndWildcardQuantifier(t *testing.T) {
	reg := newTestRegistry(t, "TASK")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/TASK/.*")
	require.NoError(t, err)
	descentBody, _ := n.ChildAt(2)
	assert.Equal(t, "SEMTREX_ZERO_OR_MORE", opLabel(t, reg, descentBody))
	inner, _ := descentBody.ChildAt(1)
	assert.Equal(t, "SEMTREX_SYMBOL_ANY", opLabel(t, reg, inner))
}

func TestParserOrIsLoosestBinding(t *testing.T) {
	reg := newTestRegistry(t, "A", "B", "C")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/A,B|C")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_OR", opLabel(t, reg, n))
	left, _ := n.ChildAt(1)
	right, _ := n.ChildAt(2)
	assert.Equal(t, "SEMTREX_SEQUENCE", opLabel(t, reg, left))
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL", opLabel(t, reg, right))
}

func TestParserGroupCapture(t *testing.T) {
	reg := newTestRegistry(t, "HomeLocation", "lat", "lon")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/HomeLocation/(<LAT:lat>,<LON:lon>)")
	require.NoError(t, err)
	body, _ := n.ChildAt(2)
	g1, _ := body.ChildAt(1)
	assert.Equal(t, "SEMTREX_GROUP", opLabel(t, reg, g1))
	assert.Equal(t, tree.SurfaceIdent, g1.Surface.Tag)
	latId, ok := reg.SymbolByName("LAT")
	require.True(t, ok)
	assert.True(t, g1.Surface.Equal(tree.IdentSurface(latId)))
}

func TestParserSymbolSetAndNegation(t *testing.T) {
	reg := newTestRegistry(t, "A", "B", "C")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/{A,B}")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL", opLabel(t, reg, n))
	set, _ := n.ChildAt(1)
	assert.Equal(t, "SEMTREX_SYMBOL_SET", opLabel(t, reg, set))
	assert.Equal(t, 2, set.ChildCount())

	n2, err := p.Parse("/!A")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL_NOT", opLabel(t, reg, n2))

	n3, err := p.Parse("/!{A,B}")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL_NOT", opLabel(t, reg, n3))
	set3, _ := n3.ChildAt(1)
	assert.Equal(t, "SEMTREX_SYMBOL_SET", opLabel(t, reg, set3))
}

func TestParserValueLiteralAndSet(t *testing.T) {
	reg := newTestRegistry(t, "MY_INT")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/MY_INT={1,2,42}")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_VALUE_LITERAL", opLabel(t, reg, n))
	require.Equal(t, 2, n.ChildCount())
	sym, _ := n.ChildAt(1)
	assert.Equal(t, "SEMTREX_SYMBOL", opLabel(t, reg, sym))
	valSet, _ := n.ChildAt(2)
	assert.Equal(t, "SEMTREX_VALUE_SET", opLabel(t, reg, valSet))
	require.Equal(t, 3, valSet.ChildCount())
	v1, _ := valSet.ChildAt(1)
	assert.True(t, v1.Surface.Equal(tree.Num(1)))

	n2, err := p.Parse(`/MY_INT!="x"`)
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_VALUE_LITERAL_NOT", opLabel(t, reg, n2))
	val2, _ := n2.ChildAt(2)
	assert.True(t, val2.Surface.Equal(tree.Str("x")))
}

func TestParserWalkAndNot(t *testing.T) {
	reg := newTestRegistry(t, "PARENT", "DEEP")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/PARENT/%DEEP")
	require.NoError(t, err)
	body, _ := n.ChildAt(2)
	assert.Equal(t, "SEMTREX_WALK", opLabel(t, reg, body))
	inner, _ := body.ChildAt(1)
	assert.Equal(t, "SEMTREX_SYMBOL_LITERAL", opLabel(t, reg, inner))

	n2, err := p.Parse("/PARENT/~DEEP")
	require.NoError(t, err)
	body2, _ := n2.ChildAt(2)
	assert.Equal(t, "SEMTREX_NOT", opLabel(t, reg, body2))
}

func TestParserQuantifiersBindTight(t *testing.T) {
	reg := newTestRegistry(t, "A", "B")
	p := pattern.NewParser(reg)
	n, err := p.Parse("/A*,B")
	require.NoError(t, err)
	assert.Equal(t, "SEMTREX_SEQUENCE", opLabel(t, reg, n))
	c1, _ := n.ChildAt(1)
	assert.Equal(t, "SEMTREX_ZERO_OR_MORE", opLabel(t, reg, c1))
}

func TestParserUnknownSymbolError(t *testing.T) {
	reg := newTestRegistry(t)
	p := pattern.NewParser(reg)
	_, err := p.Parse("/NOPE")
	var us pattern.UnknownSymbol
	require.ErrorAs(t, err, &us)
	assert.Equal(t, "NOPE", us.Label)
}

func TestParserUnterminatedGroup(t *testing.T) {
	reg := newTestRegistry(t, "A")
	p := pattern.NewParser(reg)
	_, err := p.Parse("/<G:A")
	var uc pattern.UnterminatedConstruct
	require.ErrorAs(t, err, &uc)
	assert.Equal(t, "group", uc.What)
}

func TestParserTrailingGarbageIsUnexpectedToken(t *testing.T) {
	reg := newTestRegistry(t, "A")
	p := pattern.NewParser(reg)
	_, err := p.Parse("/A)")
	var ut pattern.UnexpectedToken
	require.ErrorAs(t, err, &ut)
}
