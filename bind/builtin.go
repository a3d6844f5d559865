package bind

import (
	"strings"

	"github.com/utrack/gangway/decl"
)

// Well-known primitive type ids.
const (
	String = "string"
	Int    = "int"
	Int64  = "int64"
	BigInt = "bigint"
	Float  = "float"
	Bool   = "bool"
	Char   = "char"
	// JSON is the opaque dynamic value type.
	JSON = "json"
)

func registerBuiltins(r *Registry) {
	r.bindings[String] = Binding{Expr: "string"}
	r.bindings[Int] = Binding{Expr: "number"}
	r.bindings[Int64] = Binding{Expr: "number"}
	r.bindings[BigInt] = Binding{Expr: "number"}
	r.bindings[Float] = Binding{Expr: "number"}
	r.bindings[Bool] = Binding{Expr: "boolean"}
	r.bindings[Char] = Binding{Expr: "string", Tag: TagChar}
	r.bindings[JSON] = Binding{Expr: "any"}
}

// slotExpr renders b for use inside a container slot. An optional binding
// has no field to carry its flag there, so it widens to '| undefined'.
func slotExpr(b Binding) string {
	if b.Optional {
		return "(" + b.Expr + " | undefined)"
	}
	return b.Expr
}

// Seq registers (if absent) the binding for a sequence of elem and returns
// its id. A sequence of a character type collapses to "string".
func (r *Registry) Seq(elem string) (string, error) {
	id := "[]" + elem
	if _, ok := r.bindings[id]; ok {
		return id, nil
	}
	eb, err := r.Lookup(elem)
	if err != nil {
		return "", err
	}
	b := Binding{Parents: []string{elem}}
	if eb.Tag == TagChar {
		b.Expr = "string"
	} else {
		b.Expr = slotExpr(eb) + "[]"
	}
	return id, r.Register(id, b)
}

// Set registers the binding for a set of elem. Sets serialize as JSON
// arrays; the character collapse of Seq deliberately does not apply.
func (r *Registry) Set(elem string) (string, error) {
	id := "set(" + elem + ")"
	if _, ok := r.bindings[id]; ok {
		return id, nil
	}
	eb, err := r.Lookup(elem)
	if err != nil {
		return "", err
	}
	return id, r.Register(id, Binding{
		Expr:    slotExpr(eb) + "[]",
		Parents: []string{elem},
	})
}

// Option registers the optional wrapper around elem. The type expression is
// elem's own; optionality travels on the containing field instead. Wrapping
// an already-optional binding collapses to it.
func (r *Registry) Option(elem string) (string, error) {
	eb, err := r.Lookup(elem)
	if err != nil {
		return "", err
	}
	if eb.Optional {
		return elem, nil
	}
	id := "*" + elem
	if _, ok := r.bindings[id]; ok {
		return id, nil
	}
	return id, r.Register(id, Binding{
		Expr:     eb.Expr,
		Optional: true,
		Parents:  []string{elem},
	})
}

// Map registers a string-keyed (or otherwise) mapping of key to value.
func (r *Registry) Map(key, value string) (string, error) {
	id := "map[" + key + "]" + value
	if _, ok := r.bindings[id]; ok {
		return id, nil
	}
	kb, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	vb, err := r.Lookup(value)
	if err != nil {
		return "", err
	}
	return id, r.Register(id, Binding{
		Expr:    "Record<" + kb.Expr + ", " + slotExpr(vb) + ">",
		Parents: []string{key, value},
	})
}

// Tuple2 registers a pair of (a, b) rendered as a fixed-length array type.
func (r *Registry) Tuple2(a, b string) (string, error) {
	return r.tuple(a, b)
}

// Tuple3 registers a triple. Higher arities need explicit extension.
func (r *Registry) Tuple3(a, b, c string) (string, error) {
	return r.tuple(a, b, c)
}

func (r *Registry) tuple(elems ...string) (string, error) {
	id := "("
	for i, e := range elems {
		if i > 0 {
			id += ","
		}
		id += e
	}
	id += ")"
	if _, ok := r.bindings[id]; ok {
		return id, nil
	}

	expr := "["
	for i, e := range elems {
		eb, err := r.Lookup(e)
		if err != nil {
			return "", err
		}
		if i > 0 {
			expr += ", "
		}
		expr += slotExpr(eb)
	}
	expr += "]"
	return id, r.Register(id, Binding{Expr: expr, Parents: elems})
}

// Instance registers an instantiation of the generic binding base with the
// given type arguments, e.g. Instance("Page", Int) → "Page<number>". The
// base keeps its single generic declaration; instantiations only reference
// it.
func (r *Registry) Instance(base string, args ...string) (string, error) {
	id := base + "[" + strings.Join(args, ",") + "]"
	if _, ok := r.bindings[id]; ok {
		return id, nil
	}
	if _, err := r.Lookup(base); err != nil {
		return "", err
	}

	expr := base + "<"
	for i, a := range args {
		ab, err := r.Lookup(a)
		if err != nil {
			return "", err
		}
		if i > 0 {
			expr += ", "
		}
		expr += slotExpr(ab)
	}
	expr += ">"

	parents := append([]string{base}, args...)
	return id, r.Register(id, Binding{Expr: expr, Parents: parents})
}

// Either declarations are occurrence-independent: the alias and both case
// interfaces are genuinely generic, so every Either in a closure shares the
// same three declarations.
var eitherDecls = []decl.Declaration{
	decl.Alternatives{
		Name:     "Either",
		Generics: []string{"L", "R"},
		Alts:     []string{"ILeft<L>", "IRight<R>"},
	},
	decl.Interface{
		Name:     "ILeft",
		Generics: []string{"L"},
		Members:  []decl.Field{{Name: "Left", Expr: "L"}},
	},
	decl.Interface{
		Name:     "IRight",
		Generics: []string{"R"},
		Members:  []decl.Field{{Name: "Right", Expr: "R"}},
	},
}

// Either registers the binary sum of left and right.
func (r *Registry) Either(left, right string) (string, error) {
	id := "either(" + left + "," + right + ")"
	if _, ok := r.bindings[id]; ok {
		return id, nil
	}
	lb, err := r.Lookup(left)
	if err != nil {
		return "", err
	}
	rb, err := r.Lookup(right)
	if err != nil {
		return "", err
	}
	return id, r.Register(id, Binding{
		Expr:    "Either<" + slotExpr(lb) + ", " + slotExpr(rb) + ">",
		Decls:   eitherDecls,
		Parents: []string{left, right},
	})
}
