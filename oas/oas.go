// Package oas is the derivation frontend for OpenAPI hosts: component
// schemas become registry bindings and interface/union declarations.
package oas

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/utrack/gangway/bind"
	"github.com/utrack/gangway/decl"
)

// RegisterFile loads an OpenAPI 3 document from path and derives bindings
// for every component schema. Returns the root type ids.
func RegisterFile(reg *bind.Registry, path string) ([]string, error) {
	doc, err := openapi3.NewLoader().LoadFromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading OpenAPI document '%v'", path)
	}
	return Register(reg, doc)
}

// Register derives bindings for doc's component schemas into reg.
func Register(reg *bind.Registry, doc *openapi3.T) ([]string, error) {
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	// Schemas may $ref each other in any order, including cycles.
	for _, name := range names {
		reg.Forward(name, name)
	}

	b := builder{reg: reg}
	roots := make([]string, 0, len(names))
	for _, name := range names {
		id, err := b.schemaID(name, doc.Components.Schemas[name])
		if err != nil {
			return nil, errors.Wrapf(err, "deriving binding for schema '%v'", name)
		}
		if id != name {
			// Scalar or container alias. References baked the component
			// name while it was still a forward placeholder, so the alias
			// must declare that name: type CallSign = string.
			ab, err := reg.Lookup(id)
			if err != nil {
				return nil, errors.Wrapf(err, "resolving alias '%v'", name)
			}
			if err := reg.Register(name, bind.Binding{
				Expr:     name,
				Optional: ab.Optional,
				Decls: []decl.Declaration{decl.Alternatives{
					Name: name,
					Alts: []string{ab.Expr},
				}},
				Parents: []string{id},
			}); err != nil {
				return nil, errors.Wrapf(err, "registering alias '%v'", name)
			}
		}
		roots = append(roots, name)
	}
	return roots, nil
}

type builder struct {
	reg *bind.Registry
}

// schemaID converts one schema to a registry id, registering whatever the
// schema needs along the way. name seeds declaration names for inline
// schemas, dbgen-style: the property path in PascalCase.
func (b *builder) schemaID(name string, sr *openapi3.SchemaRef) (string, error) {
	if sr == nil {
		return bind.JSON, nil
	}
	if sr.Ref != "" && sr.Value == nil {
		return refName(sr.Ref), nil
	}

	sc := sr.Value
	id, err := b.valueID(name, sr)
	if err != nil {
		return "", err
	}
	// Self-registering kinds (objects, enums, oneOf) fold nullability into
	// their own binding; wrapping them again would shadow the name.
	if sc != nil && sc.Nullable && id != name {
		return b.reg.Option(id)
	}
	return id, nil
}

func (b *builder) valueID(name string, sr *openapi3.SchemaRef) (string, error) {
	// A resolved ref still names a component; reuse its binding instead of
	// re-deriving an anonymous copy.
	if sr.Ref != "" {
		return refName(sr.Ref), nil
	}
	sc := sr.Value

	if len(sc.OneOf) > 0 {
		return b.unionID(name, sc)
	}
	if len(sc.Enum) > 0 && sc.Type == "string" {
		return b.enumID(name, sc)
	}

	switch sc.Type {
	case "string":
		return bind.String, nil
	case "boolean":
		return bind.Bool, nil
	case "integer":
		if sc.Format == "int64" {
			return bind.Int64, nil
		}
		return bind.Int, nil
	case "number":
		return bind.Float, nil
	case "array":
		el, err := b.schemaID(name+"Item", sc.Items)
		if err != nil {
			return "", err
		}
		return b.reg.Seq(el)
	case "object", "":
		if len(sc.Properties) > 0 {
			return b.objectID(name, sc)
		}
		if sc.AdditionalProperties != nil {
			val, err := b.schemaID(name+"Value", sc.AdditionalProperties)
			if err != nil {
				return "", err
			}
			return b.reg.Map(bind.String, val)
		}
		return bind.JSON, nil
	default:
		return "", errors.Errorf("unsupported schema type '%v'", sc.Type)
	}
}

func (b *builder) objectID(name string, sc *openapi3.Schema) (string, error) {
	required := map[string]bool{}
	for _, r := range sc.Required {
		required[r] = true
	}

	props := make([]string, 0, len(sc.Properties))
	for p := range sc.Properties {
		props = append(props, p)
	}
	sort.Strings(props)

	obj := bind.Object{Name: name, Optional: sc.Nullable}
	for _, p := range props {
		pid, err := b.schemaID(name+strcase.ToCamel(p), sc.Properties[p])
		if err != nil {
			return "", errors.Wrapf(err, "parsing property '%v'", p)
		}
		obj.Fields = append(obj.Fields, bind.Field{
			Name:     p,
			Type:     pid,
			Optional: !required[p],
		})
	}
	return b.reg.Object(obj)
}

func (b *builder) unionID(name string, sc *openapi3.Schema) (string, error) {
	u := bind.Union{Name: name, Optional: sc.Nullable}
	for i, alt := range sc.OneOf {
		vname := fmt.Sprintf("Alt%d", i)
		if alt.Ref != "" {
			vname = refName(alt.Ref)
		}
		pid, err := b.schemaID(name+vname, alt)
		if err != nil {
			return "", errors.Wrapf(err, "parsing oneOf case %d", i)
		}
		u.Variants = append(u.Variants, bind.Variant{Name: vname, Payload: pid})
	}
	return b.reg.Union(u)
}

func (b *builder) enumID(name string, sc *openapi3.Schema) (string, error) {
	alt := decl.Alternatives{Name: name}
	for _, v := range sc.Enum {
		s, ok := v.(string)
		if !ok {
			return "", errors.Errorf("non-string enum value '%v'", v)
		}
		alt.Alts = append(alt.Alts, strconv.Quote(s))
	}
	return name, b.reg.Register(name, bind.Binding{
		Expr:     name,
		Optional: sc.Nullable,
		Decls:    []decl.Declaration{alt},
	})
}

func refName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}
