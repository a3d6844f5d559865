// Package bind maps host type identities to TypeScript type expressions and
// the top-level declarations those expressions rely on. A Registry is
// populated once, before any lookup, and is read-only for the rest of the
// generation run.
package bind

import "github.com/utrack/gangway/decl"

// Tag is out-of-band metadata on a binding that alters composition rules in
// specific contexts.
type Tag uint8

const (
	TagNone Tag = iota
	// TagChar marks a single-character type; a sequence of it collapses to
	// "string" instead of an array. Sets intentionally do not collapse.
	TagChar
)

// Binding describes how one host type maps to the target language.
type Binding struct {
	// Expr is a standalone type reference, e.g. "number" or "Either<A, B>".
	Expr string
	// Decls are top-level declarations this type requires to exist.
	Decls []decl.Declaration
	// Optional marks fields of this type optional in containing interfaces
	// instead of widening the type expression.
	Optional bool
	Tag      Tag
	// Parents are ids of bindings this type depends on; closure traversal
	// follows them, the type expression does not.
	Parents []string
}

func bindingEqual(a, b Binding) bool {
	if a.Expr != b.Expr || a.Optional != b.Optional || a.Tag != b.Tag {
		return false
	}
	if len(a.Decls) != len(b.Decls) || len(a.Parents) != len(b.Parents) {
		return false
	}
	for i := range a.Decls {
		if a.Decls[i].Key() != b.Decls[i].Key() {
			return false
		}
	}
	for i := range a.Parents {
		if a.Parents[i] != b.Parents[i] {
			return false
		}
	}
	return true
}
