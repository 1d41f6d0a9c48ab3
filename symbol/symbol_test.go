package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptree/semtrex/symbol"
)

func TestNullSentinelsAreDistinct(t *testing.T) {
	assert.NotEqual(t, symbol.NullSymbol, symbol.NullStructure)
	assert.True(t, symbol.NullSymbol.IsNull())
	assert.True(t, symbol.NullStructure.IsNull())
}

func TestDefineSymbolAllocatesMonotonically(t *testing.T) {
	r := symbol.NewRegistry()
	a := r.DefineSymbol(0, symbol.NullStructure, "A")
	b := r.DefineSymbol(0, symbol.NullStructure, "B")
	assert.Equal(t, a.Context, b.Context)
	assert.Equal(t, symbol.SYMBOL, a.Kind)
	assert.NotEqual(t, a.Num, b.Num)
	assert.Less(t, a.Num, b.Num)
}

func TestRegisterBuiltinsThenUserDefinitionsDoNotCollide(t *testing.T) {
	r := symbol.NewRegistry()
	r.RegisterBuiltins()

	label, ok := r.LabelOf(symbol.Id{Context: 0, Kind: symbol.SYMBOL, Num: symbol.SEMTREX_SEQUENCE})
	require.True(t, ok)
	assert.Equal(t, "SEMTREX_SEQUENCE", label)

	structLabel, ok := r.LabelOf(symbol.Id{Context: 0, Kind: symbol.STRUCTURE, Num: symbol.INTEGER})
	require.True(t, ok)
	assert.Equal(t, "INTEGER", structLabel)

	user := r.DefineSymbol(0, symbol.NullStructure, "MY_SYMBOL")
	assert.Greater(t, user.Num, symbol.SEMANTIC_MAP)
}

func TestSymbolByNameSearchesContextsInOrderAndReturnsFirstHit(t *testing.T) {
	r := symbol.NewRegistry()
	first := r.DefineSymbol(0, symbol.NullStructure, "SHARED")
	r.DefineSymbol(1, symbol.NullStructure, "SHARED")

	got, ok := r.SymbolByName("SHARED")
	require.True(t, ok)
	assert.Equal(t, first, got)

	_, ok = r.SymbolByName("NOPE")
	assert.False(t, ok)
}

func TestStructureByName(t *testing.T) {
	r := symbol.NewRegistry()
	part := r.DefineSymbol(0, symbol.NullStructure, "FIELD")
	s := r.DefineStructure(0, "POINT", part, part)

	got, ok := r.StructureByName("POINT")
	require.True(t, ok)
	assert.Equal(t, s, got)

	def, ok := r.StructureDefOf(s)
	require.True(t, ok)
	assert.Equal(t, []symbol.Id{part, part}, def.Parts)
}

func TestIdEqualityIsComponentWise(t *testing.T) {
	a := symbol.Id{Context: 0, Kind: symbol.SYMBOL, Num: 5}
	b := symbol.Id{Context: 0, Kind: symbol.SYMBOL, Num: 5}
	c := symbol.Id{Context: 0, Kind: symbol.STRUCTURE, Num: 5}
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
