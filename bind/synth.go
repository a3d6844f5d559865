package bind

import "github.com/utrack/gangway/decl"

// Field describes one record member fed to the synthesizer by a derivation
// frontend.
type Field struct {
	// Name is the host field name.
	Name string
	// JSONKey, when set, is the serializer's renamed key and wins over Name
	// in the emitted member.
	JSONKey string
	// Type is a registry id, or a generic parameter name listed on the
	// containing Object, which passes through verbatim.
	Type string
	// Optional forces the member optional; a binding-level Optional flag
	// wins regardless.
	Optional bool
}

// Object is the synthesizer input for a record type.
type Object struct {
	Name     string
	Generics []string
	Fields   []Field
	// Optional marks the type itself nullable at its boundary, so fields of
	// it are optional in containing interfaces.
	Optional bool
}

// Variant is one constructor of a sum type.
type Variant struct {
	Name string
	// Payload is a registry id or a generic parameter name.
	Payload string
}

// Union is the synthesizer input for a sum type.
type Union struct {
	Name     string
	Generics []string
	Variants []Variant
	Optional bool
}

// Object builds the interface declaration for o, registers the resulting
// binding under o.Name and returns that id. Member order follows field
// order exactly; nothing is reordered or deduplicated here.
func (r *Registry) Object(o Object) (string, error) {
	if o.Name == "" {
		return "", MalformedMetadataError{Reason: "record with empty type name"}
	}

	iface := decl.Interface{Name: o.Name, Generics: o.Generics}
	var parents []string
	for _, f := range o.Fields {
		if f.Name == "" {
			return "", MalformedMetadataError{Reason: "empty field name on record '" + o.Name + "'"}
		}
		name := f.Name
		if f.JSONKey != "" {
			name = f.JSONKey
		}

		if isGenericParam(f.Type, o.Generics) {
			iface.Members = append(iface.Members, decl.Field{
				Optional: f.Optional,
				Name:     name,
				Expr:     f.Type,
			})
			continue
		}

		fb, err := r.Lookup(f.Type)
		if err != nil {
			return "", err
		}
		iface.Members = append(iface.Members, decl.Field{
			Optional: fb.Optional || f.Optional,
			Name:     name,
			Expr:     fb.Expr,
		})
		parents = append(parents, f.Type)
	}

	return o.Name, r.Register(o.Name, Binding{
		Expr:     refExpr(o.Name, o.Generics),
		Decls:    []decl.Declaration{iface},
		Optional: o.Optional,
		Parents:  parents,
	})
}

// Union builds the alternatives declaration for u, registers the binding
// under u.Name and returns that id. Alternatives are the resolved type
// expressions of each constructor's payload, in constructor order.
func (r *Registry) Union(u Union) (string, error) {
	if u.Name == "" {
		return "", MalformedMetadataError{Reason: "sum type with empty name"}
	}

	alt := decl.Alternatives{Name: u.Name, Generics: u.Generics}
	var parents []string
	for _, v := range u.Variants {
		if v.Name == "" {
			return "", MalformedMetadataError{Reason: "empty constructor name on sum type '" + u.Name + "'"}
		}
		if isGenericParam(v.Payload, u.Generics) {
			alt.Alts = append(alt.Alts, v.Payload)
			continue
		}
		pb, err := r.Lookup(v.Payload)
		if err != nil {
			return "", err
		}
		alt.Alts = append(alt.Alts, slotExpr(pb))
		parents = append(parents, v.Payload)
	}

	return u.Name, r.Register(u.Name, Binding{
		Expr:     refExpr(u.Name, u.Generics),
		Decls:    []decl.Declaration{alt},
		Optional: u.Optional,
		Parents:  parents,
	})
}

func isGenericParam(t string, generics []string) bool {
	for _, g := range generics {
		if t == g {
			return true
		}
	}
	return false
}

func refExpr(name string, generics []string) string {
	if len(generics) == 0 {
		return name
	}
	expr := name + "<"
	for i, g := range generics {
		if i > 0 {
			expr += ", "
		}
		expr += g
	}
	return expr + ">"
}
