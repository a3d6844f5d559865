package bind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utrack/gangway/decl"
)

func declNames(ds []decl.Declaration) []string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.DeclName())
	}
	return names
}

func TestClosureCollectsParents(t *testing.T) {
	r := Builtin()

	_, err := r.Object(Object{Name: "Crew", Fields: []Field{{Name: "name", Type: String}}})
	require.NoError(t, err)
	crews, err := r.Seq("Crew")
	require.NoError(t, err)
	_, err = r.Object(Object{Name: "Ship", Fields: []Field{{Name: "crew", Type: crews}}})
	require.NoError(t, err)

	ds, err := r.Closure("Ship")
	require.NoError(t, err)
	// Root's declarations come before the ones pulled in via parents.
	assert.Equal(t, []string{"Ship", "Crew"}, declNames(ds))
}

func TestClosureIdempotent(t *testing.T) {
	r := Builtin()
	_, err := r.Object(Object{Name: "Crew", Fields: []Field{{Name: "name", Type: String}}})
	require.NoError(t, err)
	_, err = r.Object(Object{Name: "Ship", Fields: []Field{{Name: "captain", Type: "Crew"}}})
	require.NoError(t, err)

	first, err := r.Closure("Ship")
	require.NoError(t, err)
	second, err := r.Closure("Ship")
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Key(), second[i].Key())
	}
}

func TestClosureDeduplicatesEither(t *testing.T) {
	r := Builtin()

	e1, err := r.Either(Int, String)
	require.NoError(t, err)
	e2, err := r.Either(Bool, Float)
	require.NoError(t, err)
	_, err = r.Object(Object{Name: "Outcome", Fields: []Field{
		{Name: "first", Type: e1},
		{Name: "second", Type: e2},
		{Name: "again", Type: e1},
	}})
	require.NoError(t, err)

	ds, err := r.Closure("Outcome")
	require.NoError(t, err)

	// Both Either occurrences share the same three generic declarations.
	assert.Equal(t, []string{"Outcome", "Either", "ILeft", "IRight"}, declNames(ds))
}

func TestClosureCyclicTypesTerminate(t *testing.T) {
	r := Builtin()

	r.Forward("Knot", "Knot")
	loops, err := r.Seq("Knot")
	require.NoError(t, err)
	_, err = r.Object(Object{Name: "Rope", Fields: []Field{{Name: "knots", Type: loops}}})
	require.NoError(t, err)
	_, err = r.Object(Object{Name: "Knot", Fields: []Field{{Name: "rope", Type: "Rope"}}})
	require.NoError(t, err)

	ds, err := r.Closure("Rope")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rope", "Knot"}, declNames(ds))

	// From the other side too, each declaration exactly once.
	ds, err = r.Closure("Knot", "Rope")
	require.NoError(t, err)
	assert.Equal(t, []string{"Knot", "Rope"}, declNames(ds))
}

func TestClosureMultipleRoots(t *testing.T) {
	r := Builtin()
	_, err := r.Object(Object{Name: "A", Fields: []Field{{Name: "x", Type: Int}}})
	require.NoError(t, err)
	_, err = r.Object(Object{Name: "B", Fields: []Field{{Name: "a", Type: "A"}}})
	require.NoError(t, err)

	ds, err := r.Closure("B", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, declNames(ds))
}

func TestClosureUnregisteredAbortsWithNoOutput(t *testing.T) {
	r := Builtin()
	r.Forward("Phantom", "Phantom")
	seq, err := r.Seq("Phantom")
	require.NoError(t, err)
	_, err = r.Object(Object{Name: "Fleet", Fields: []Field{{Name: "ships", Type: seq}}})
	require.NoError(t, err)
	// "Phantom" is never finalized.

	ds, err := r.Closure("Fleet")
	require.Error(t, err)
	assert.Nil(t, ds)

	var ute UnregisteredTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "Phantom", ute.ID)
}
