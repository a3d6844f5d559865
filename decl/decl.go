// Package decl holds the declaration records a generation run produces:
// interfaces, union alternatives and raw escape-hatch text. Declarations are
// immutable values; equality is structural so the closure collector can
// deduplicate by value.
package decl

import "strings"

// Field is a single interface member.
type Field struct {
	Optional bool
	Name     string
	Expr     string
}

// Declaration is a top-level named construct that must be emitted once.
type Declaration interface {
	// DeclName returns the canonical (untransformed) name, empty for raw text.
	DeclName() string
	// Key returns a canonical structural identity. Two declarations with
	// equal keys are the same declaration regardless of how they were built.
	Key() string
}

// Interface is a structural record type.
type Interface struct {
	Name     string
	Generics []string
	Members  []Field
}

func (i Interface) DeclName() string { return i.Name }

func (i Interface) Key() string {
	var sb strings.Builder
	sb.WriteString("interface ")
	sb.WriteString(i.Name)
	writeGenerics(&sb, i.Generics)
	for _, m := range i.Members {
		sb.WriteByte(';')
		sb.WriteString(m.Name)
		if m.Optional {
			sb.WriteByte('?')
		}
		sb.WriteByte(':')
		sb.WriteString(m.Expr)
	}
	return sb.String()
}

// Alternatives is a tagged union represented as a set of alternative
// type expressions.
type Alternatives struct {
	Name     string
	Generics []string
	Alts     []string
}

func (a Alternatives) DeclName() string { return a.Name }

func (a Alternatives) Key() string {
	var sb strings.Builder
	sb.WriteString("type ")
	sb.WriteString(a.Name)
	writeGenerics(&sb, a.Generics)
	sb.WriteByte('=')
	sb.WriteString(strings.Join(a.Alts, "|"))
	return sb.String()
}

// Raw is hand-authored declaration text emitted verbatim.
type Raw struct {
	Text string
}

func (r Raw) DeclName() string { return "" }

func (r Raw) Key() string { return "raw:" + r.Text }

func writeGenerics(sb *strings.Builder, gs []string) {
	if len(gs) == 0 {
		return
	}
	sb.WriteByte('<')
	sb.WriteString(strings.Join(gs, ","))
	sb.WriteByte('>')
}
