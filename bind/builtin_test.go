package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLookup(t *testing.T, r *Registry, id string) Binding {
	t.Helper()
	b, err := r.Lookup(id)
	require.NoError(t, err)
	return b
}

func TestSeqOfCharCollapsesToString(t *testing.T) {
	r := Builtin()

	id, err := r.Seq(Char)
	require.NoError(t, err)
	assert.Equal(t, "[]char", id)
	assert.Equal(t, "string", mustLookup(t, r, id).Expr)
}

func TestSetOfCharStaysArray(t *testing.T) {
	r := Builtin()

	// Sets serialize as arrays; no character collapse.
	id, err := r.Set(Char)
	require.NoError(t, err)
	assert.Equal(t, "string[]", mustLookup(t, r, id).Expr)
}

func TestSeqOfInt(t *testing.T) {
	r := Builtin()

	id, err := r.Seq(Int)
	require.NoError(t, err)
	b := mustLookup(t, r, id)
	assert.Equal(t, "number[]", b.Expr)
	assert.Empty(t, b.Decls)
	assert.Equal(t, []string{Int}, b.Parents)
}

func TestOptionCarriesNoUnion(t *testing.T) {
	r := Builtin()

	id, err := r.Option(Int)
	require.NoError(t, err)
	b := mustLookup(t, r, id)
	assert.Equal(t, "number", b.Expr)
	assert.True(t, b.Optional)
}

func TestOptionOfOptionCollapses(t *testing.T) {
	r := Builtin()

	inner, err := r.Option(Int)
	require.NoError(t, err)
	outer, err := r.Option(inner)
	require.NoError(t, err)
	assert.Equal(t, inner, outer)
}

func TestOptionInsideContainerWidens(t *testing.T) {
	r := Builtin()

	opt, err := r.Option(Int)
	require.NoError(t, err)

	seq, err := r.Seq(opt)
	require.NoError(t, err)
	assert.Equal(t, "(number | undefined)[]", mustLookup(t, r, seq).Expr)

	set, err := r.Set(opt)
	require.NoError(t, err)
	assert.Equal(t, "(number | undefined)[]", mustLookup(t, r, set).Expr)

	tup, err := r.Tuple2(String, opt)
	require.NoError(t, err)
	assert.Equal(t, "[string, (number | undefined)]", mustLookup(t, r, tup).Expr)
}

func TestTuples(t *testing.T) {
	r := Builtin()

	t2, err := r.Tuple2(Bool, String)
	require.NoError(t, err)
	assert.Equal(t, "[boolean, string]", mustLookup(t, r, t2).Expr)

	t3, err := r.Tuple3(Bool, String, Int)
	require.NoError(t, err)
	b := mustLookup(t, r, t3)
	assert.Equal(t, "[boolean, string, number]", b.Expr)
	assert.Equal(t, []string{Bool, String, Int}, b.Parents)
}

func TestMap(t *testing.T) {
	r := Builtin()

	id, err := r.Map(String, Float)
	require.NoError(t, err)
	assert.Equal(t, "Record<string, number>", mustLookup(t, r, id).Expr)
}

func TestEither(t *testing.T) {
	r := Builtin()

	id, err := r.Either(Int, String)
	require.NoError(t, err)
	b := mustLookup(t, r, id)
	assert.Equal(t, "Either<number, string>", b.Expr)
	require.Len(t, b.Decls, 3)
	assert.Equal(t, "Either", b.Decls[0].DeclName())
	assert.Equal(t, "ILeft", b.Decls[1].DeclName())
	assert.Equal(t, "IRight", b.Decls[2].DeclName())
}

func TestInstance(t *testing.T) {
	r := Builtin()
	_, err := r.Object(Object{
		Name:     "Page",
		Generics: []string{"T"},
		Fields:   []Field{{Name: "items", Type: "T"}},
	})
	require.NoError(t, err)

	id, err := r.Instance("Page", Int)
	require.NoError(t, err)
	assert.Equal(t, "Page[int]", id)

	b := mustLookup(t, r, id)
	assert.Equal(t, "Page<number>", b.Expr)
	assert.Empty(t, b.Decls)
	assert.Equal(t, []string{"Page", Int}, b.Parents)

	// Reuse is idempotent; two instantiations differ.
	again, err := r.Instance("Page", Int)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	other, err := r.Instance("Page", String)
	require.NoError(t, err)
	assert.Equal(t, "Page<string>", mustLookup(t, r, other).Expr)

	_, err = r.Instance("Ghost", Int)
	require.Error(t, err)
}

func TestDerivedConstructorOnUnregisteredElem(t *testing.T) {
	r := Builtin()

	_, err := r.Seq("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}
