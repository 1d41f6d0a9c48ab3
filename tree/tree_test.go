package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

func setupRegistry() *symbol.Registry {
	r := symbol.NewRegistry()
	r.RegisterBuiltins()
	return r
}

func TestAddChildDetachesFromPriorParent(t *testing.T) {
	reg := setupRegistry()
	a, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	b, _ := reg.SymbolByName("SEMTREX_OR")

	p1 := tree.New(a, tree.Null)
	p2 := tree.New(a, tree.Null)
	c := tree.New(b, tree.Null)

	tree.AddChild(p1, c)
	assert.Equal(t, 1, p1.ChildCount())

	tree.AddChild(p2, c)
	assert.Equal(t, 0, p1.ChildCount())
	assert.Equal(t, 1, p2.ChildCount())
	assert.Equal(t, p2, c.Parent())
}

func TestNavigationIsOneIndexedAndStrict(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Null)
	c1 := tree.NewChild(root, sym, tree.Num(1))
	c2 := tree.NewChild(root, sym, tree.Num(2))

	got, ok := root.ChildAt(1)
	require.True(t, ok)
	assert.Same(t, c1, got)

	got, ok = root.ChildAt(2)
	require.True(t, ok)
	assert.Same(t, c2, got)

	_, ok = root.ChildAt(0)
	assert.False(t, ok)
	_, ok = root.ChildAt(3)
	assert.False(t, ok)

	idx, ok := c2.NodeIndex()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	next, ok := c1.NextSibling()
	require.True(t, ok)
	assert.Same(t, c2, next)

	_, ok = c2.NextSibling()
	assert.False(t, ok)
}

func TestDetachYieldsOwnershipTransferringRoot(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Null)
	c := tree.NewChild(root, sym, tree.Null)

	d := tree.Detach(c)
	assert.Same(t, c, d)
	assert.Nil(t, d.Parent())
	assert.Equal(t, 0, root.ChildCount())
}

func TestCloneDeepCopiesWithNoParent(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Str("root"))
	tree.NewChild(root, sym, tree.Num(1))

	clone := tree.Clone(root)
	assert.Nil(t, clone.Parent())
	assert.Equal(t, root.ChildCount(), clone.ChildCount())
	orig, _ := root.ChildAt(1)
	copied, _ := clone.ChildAt(1)
	assert.NotSame(t, orig, copied)
	assert.True(t, orig.Surface.Equal(copied.Surface))
}

func TestMorphOverwritesOnlySymbolAndSurface(t *testing.T) {
	reg := setupRegistry()
	a, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	b, _ := reg.SymbolByName("SEMTREX_OR")

	dst := tree.New(a, tree.Null)
	child := tree.NewChild(dst, a, tree.Null)
	src := tree.New(b, tree.Str("x"))

	tree.Morph(dst, src)
	assert.Equal(t, b, dst.Symbol)
	assert.True(t, dst.Surface.Equal(tree.Str("x")))
	assert.Equal(t, 1, dst.ChildCount())
	got, _ := dst.ChildAt(1)
	assert.Same(t, child, got)
}

func TestReplaceNodeTransfersChildren(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	dst := tree.New(sym, tree.Null)
	tree.NewChild(dst, sym, tree.Str("stale"))

	src := tree.New(sym, tree.Null)
	sc1 := tree.NewChild(src, sym, tree.Num(1))
	sc2 := tree.NewChild(src, sym, tree.Num(2))

	tree.ReplaceNode(dst, src)
	assert.Equal(t, 2, dst.ChildCount())
	assert.Equal(t, 0, src.ChildCount())
	got1, _ := dst.ChildAt(1)
	got2, _ := dst.ChildAt(2)
	assert.Same(t, sc1, got1)
	assert.Same(t, sc2, got2)
	assert.Same(t, dst, sc1.Parent())
}

func TestBuilderConstructsNestedTree(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	grafted := tree.New(sym, tree.Str("grafted"))

	root := tree.NewBuilder(sym, tree.Null).
		Down(sym, tree.Str("a")).
		Leaf(sym, tree.Str("a1")).
		Up().
		Leaf(sym, tree.Str("b")).
		Graft(grafted).
		Tree()

	require.Equal(t, 3, root.ChildCount())
	a, _ := root.ChildAt(1)
	require.Equal(t, 1, a.ChildCount())
	a1, _ := a.ChildAt(1)
	assert.True(t, a1.Surface.Equal(tree.Str("a1")))
	b, _ := root.ChildAt(2)
	assert.True(t, b.Surface.Equal(tree.Str("b")))
	g, _ := root.ChildAt(3)
	assert.Same(t, grafted, g)
	assert.Same(t, root, g.Parent())
}

func TestGetPathAndGetByPath(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Null)
	c1 := tree.NewChild(root, sym, tree.Null)
	gc := tree.NewChild(c1, sym, tree.Str("leaf"))

	p := tree.GetPath(gc)
	assert.Equal(t, tree.Path{1, 1}, p)

	got, ok := tree.GetByPath(root, p)
	require.True(t, ok)
	assert.Same(t, gc, got)

	_, ok = tree.GetByPath(root, tree.Path{5})
	assert.False(t, ok)
}

func TestInsertAtOutOfRange(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Null)
	child := tree.New(sym, tree.Null)

	err := tree.InsertAt(root, 2, child)
	var oor tree.OutOfRange
	assert.ErrorAs(t, err, &oor)
}

func TestWalkVisitsPreOrder(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Str("root"))
	a := tree.NewChild(root, sym, tree.Str("a"))
	tree.NewChild(a, sym, tree.Str("a1"))
	tree.NewChild(root, sym, tree.Str("b"))

	var order []string
	tree.Walk(root, func(n *tree.Node) bool {
		order = append(order, n.Surface.Text)
		return true
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, order)
}

func TestTextRoundTrip(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Null)
	tree.NewChild(root, sym, tree.Num(42))
	tree.NewChild(root, sym, tree.Str("hi"))
	tree.NewChild(root, sym, tree.Str(`with spaces and ")"`))
	tree.NewChild(root, sym, tree.IdentSurface(sym))

	p := tree.NewPrinter(reg)
	text := p.Print(root)

	parsed, err := tree.ParseText(reg, text)
	require.NoError(t, err)
	assert.Equal(t, text, p.Print(parsed))
}

func TestBinaryRoundTrip(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Str("hello"))
	tree.NewChild(root, sym, tree.Num(3.25))
	tree.NewChild(root, sym, tree.Blob([]byte{1, 2, 3}))

	buf := tree.EncodeBinary(root)
	decoded, err := tree.DecodeBinary(buf)
	require.NoError(t, err)

	p := tree.NewPrinter(reg)
	assert.Equal(t, p.Print(root), p.Print(decoded))
}

func TestJSONRoundTrip(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	root := tree.New(sym, tree.Bool(true))
	tree.NewChild(root, sym, tree.Str("x"))

	data, err := tree.EncodeJSON(root)
	require.NoError(t, err)
	decoded, err := tree.DecodeJSON(data)
	require.NoError(t, err)

	p := tree.NewPrinter(reg)
	assert.Equal(t, p.Print(root), p.Print(decoded))
}

func TestHashIsStructural(t *testing.T) {
	reg := setupRegistry()
	sym, _ := reg.SymbolByName("SEMTREX_SEQUENCE")
	a := tree.New(sym, tree.Str("x"))
	tree.NewChild(a, sym, tree.Num(1))
	b := tree.New(sym, tree.Str("x"))
	tree.NewChild(b, sym, tree.Num(1))
	c := tree.New(sym, tree.Str("x"))
	tree.NewChild(c, sym, tree.Num(2))

	ha, err := tree.Hash(a)
	require.NoError(t, err)
	hb, err := tree.Hash(b)
	require.NoError(t, err)
	hc, err := tree.Hash(c)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
}
