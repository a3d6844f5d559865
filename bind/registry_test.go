package bind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPrimitives(t *testing.T) {
	r := Builtin()

	cases := map[string]string{
		String: "string",
		Int:    "number",
		Int64:  "number",
		BigInt: "number",
		Float:  "number",
		Bool:   "boolean",
		JSON:   "any",
	}
	for id, want := range cases {
		b, err := r.Lookup(id)
		require.NoError(t, err, id)
		assert.Equal(t, want, b.Expr, id)
		assert.False(t, b.Optional, id)
	}

	ch, err := r.Lookup(Char)
	require.NoError(t, err)
	assert.Equal(t, "string", ch.Expr)
	assert.Equal(t, TagChar, ch.Tag)
}

func TestLookupUnregistered(t *testing.T) {
	r := Builtin()

	_, err := r.Lookup("ghost")
	require.Error(t, err)

	var ute UnregisteredTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "ghost", ute.ID)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	b := Binding{Expr: "number"}

	require.NoError(t, r.Register("score", b))
	require.NoError(t, r.Register("score", b))

	got, err := r.Lookup("score")
	require.NoError(t, err)
	assert.Equal(t, "number", got.Expr)
}

func TestRegisterConflict(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("score", Binding{Expr: "number"}))

	err := r.Register("score", Binding{Expr: "string"})
	require.Error(t, err)

	var cbe ConflictingBindingError
	require.True(t, errors.As(err, &cbe))
	assert.Equal(t, "score", cbe.ID)
}

func TestForwardFinalization(t *testing.T) {
	r := NewRegistry()
	r.Forward("Node", "Node")

	// The placeholder resolves for expression composition.
	b, err := r.Lookup("Node")
	require.NoError(t, err)
	assert.Equal(t, "Node", b.Expr)

	// The real binding replaces the placeholder without conflict.
	require.NoError(t, r.Register("Node", Binding{Expr: "Node", Parents: []string{String}}))
	b, err = r.Lookup("Node")
	require.NoError(t, err)
	assert.Equal(t, []string{String}, b.Parents)

	// Forwarding an already-bound id is a no-op.
	r.Forward("Node", "whatever")
	b, err = r.Lookup("Node")
	require.NoError(t, err)
	assert.Equal(t, "Node", b.Expr)
}
