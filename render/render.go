// Package render pretty-prints collected declarations as TypeScript source.
// Name transforms apply here and only here; the registry and closure
// collector always see canonical names.
package render

import (
	"strings"

	"github.com/utrack/gangway/decl"
)

// Declarations renders ds as a single source text, declarations separated
// by a blank line.
func Declarations(ds []decl.Declaration, opts ...Option) string {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, renderOne(d, cfg))
	}
	return strings.Join(parts, "\n")
}

func renderOne(d decl.Declaration, cfg config) string {
	switch t := d.(type) {
	case decl.Interface:
		return renderInterface(t, cfg)
	case decl.Alternatives:
		return renderAlternatives(t, cfg)
	case decl.Raw:
		return strings.TrimRight(t.Text, "\n") + "\n"
	default:
		// Externally defined declaration kinds render through their key.
		return d.Key() + "\n"
	}
}

func renderInterface(i decl.Interface, cfg config) string {
	var sb strings.Builder
	sb.WriteString("export interface ")
	sb.WriteString(cfg.interfaceName(i.Name))
	writeGenerics(&sb, i.Generics)
	sb.WriteString(" {\n")

	indent := strings.Repeat(" ", cfg.indentWidth)
	for _, m := range i.Members {
		sb.WriteString(indent)
		sb.WriteString(m.Name)
		if m.Optional {
			sb.WriteByte('?')
		}
		sb.WriteString(": ")
		sb.WriteString(m.Expr)
		sb.WriteString(";\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func renderAlternatives(a decl.Alternatives, cfg config) string {
	var sb strings.Builder
	sb.WriteString("export type ")
	sb.WriteString(cfg.typeName(a.Name))
	writeGenerics(&sb, a.Generics)
	sb.WriteString(" = ")
	sb.WriteString(strings.Join(a.Alts, " | "))
	sb.WriteString(";\n")
	return sb.String()
}

func writeGenerics(sb *strings.Builder, gs []string) {
	if len(gs) == 0 {
		return
	}
	sb.WriteByte('<')
	sb.WriteString(strings.Join(gs, ", "))
	sb.WriteByte('>')
}
