// Package gosrc is the derivation frontend for Go hosts: it loads packages,
// walks exported struct types and registers a binding for every type
// reachable through their fields, honoring encoding/json field tags.
package gosrc

import (
	"go/types"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"

	"github.com/utrack/gangway/bind"
)

// Config selects which Go types to derive bindings for.
type Config struct {
	// Dir is the directory packages are resolved from.
	Dir string
	// Patterns are package patterns in the go tool's syntax, e.g. "./...".
	Patterns []string
	// Roots optionally restricts derivation to the named exported types;
	// empty means every exported struct in the matched packages.
	Roots []string
}

// Register derives bindings for the types selected by cfg into reg and
// returns the root type ids in a stable order.
func Register(reg *bind.Registry, cfg Config) ([]string, error) {
	pcfg := packages.Config{
		Mode: packages.NeedTypesInfo |
			packages.NeedSyntax |
			packages.NeedName |
			packages.NeedDeps |
			packages.NeedTypes,
		Dir: cfg.Dir,
	}
	pkgs, err := packages.Load(&pcfg, cfg.Patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return nil, errors.Errorf("loading package '%v': %v", p.PkgPath, p.Errors[0])
		}
	}

	want := map[string]bool{}
	for _, r := range cfg.Roots {
		want[r] = true
	}

	b := builder{reg: reg, inProgress: map[string]bool{}, done: map[string]bool{}}

	var roots []string
	for _, pkg := range pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			if len(want) > 0 && !want[name] {
				continue
			}
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}
			namedT, ok := obj.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, ok := namedT.Underlying().(*types.Struct); !ok {
				continue
			}
			id, err := b.structID(namedT)
			if err != nil {
				return nil, errors.Wrapf(err, "deriving binding for '%v'", name)
			}
			roots = append(roots, id)
		}
	}

	for r := range want {
		if !b.done[r] {
			return nil, errors.Errorf("root type '%v' not found in %v", r, cfg.Patterns)
		}
	}
	return roots, nil
}

type builder struct {
	reg        *bind.Registry
	inProgress map[string]bool
	done       map[string]bool
}

func (b *builder) typeID(tt types.Type) (string, error) {
	switch t := tt.(type) {
	case *types.Basic:
		return basicID(t)
	case *types.Slice:
		if isByte(t.Elem()) {
			// []byte serializes as a base64 string.
			return bind.String, nil
		}
		el, err := b.typeID(t.Elem())
		if err != nil {
			return "", errors.Wrapf(err, "parsing element of '%v'", t.String())
		}
		return b.reg.Seq(el)
	case *types.Array:
		el, err := b.typeID(t.Elem())
		if err != nil {
			return "", errors.Wrapf(err, "parsing element of '%v'", t.String())
		}
		return b.reg.Seq(el)
	case *types.Pointer:
		el, err := b.typeID(t.Elem())
		if err != nil {
			return "", errors.Wrapf(err, "parsing ptr value of '%v'", t.String())
		}
		return b.reg.Option(el)
	case *types.Map:
		key, err := b.typeID(t.Key())
		if err != nil {
			return "", errors.Wrapf(err, "parsing key type of map '%v'", t.String())
		}
		value, err := b.typeID(t.Elem())
		if err != nil {
			return "", errors.Wrapf(err, "parsing value type of map '%v'", t.String())
		}
		return b.reg.Map(key, value)
	case *types.TypeParam:
		return t.Obj().Name(), nil
	case *types.Named:
		return b.namedID(t)
	case *types.Interface:
		if t.Empty() {
			return bind.JSON, nil
		}
		return "", errors.Errorf("cannot derive a binding for interface '%v'", t.String())
	default:
		return "", errors.Errorf("unsupported type '%v' (%v)", tt.String(), reflect.TypeOf(tt))
	}
}

func (b *builder) namedID(t *types.Named) (string, error) {
	switch t.String() {
	case "time.Time":
		// RFC 3339 text on the wire.
		id := "time.Time"
		return id, b.reg.Register(id, bind.Binding{Expr: "string"})
	case "encoding/json.RawMessage":
		return bind.JSON, nil
	}

	switch tu := t.Underlying().(type) {
	case *types.Basic:
		return basicID(tu)
	case *types.Slice, *types.Map, *types.Interface:
		return b.typeID(tu)
	case *types.Struct:
		if t.TypeArgs().Len() > 0 {
			return b.instanceID(t)
		}
		return b.structID(t)
	default:
		return "", errors.Errorf("unknown underlying type '%v' of '%v'", tu.String(), t.String())
	}
}

// instanceID derives an instantiated generic struct, e.g. Page[int]: the
// origin keeps the single generic declaration, the instantiation composes
// its reference expression.
func (b *builder) instanceID(t *types.Named) (string, error) {
	base, err := b.structID(t.Origin())
	if err != nil {
		return "", err
	}
	args := make([]string, 0, t.TypeArgs().Len())
	for i := 0; i < t.TypeArgs().Len(); i++ {
		aid, err := b.typeID(t.TypeArgs().At(i))
		if err != nil {
			return "", errors.Wrapf(err, "parsing type argument %d of '%v'", i, t.String())
		}
		args = append(args, aid)
	}
	return b.reg.Instance(base, args...)
}

func (b *builder) structID(t *types.Named) (string, error) {
	name := t.Obj().Name()
	if b.done[name] || b.inProgress[name] {
		return name, nil
	}
	b.inProgress[name] = true
	defer delete(b.inProgress, name)

	// Mutually recursive structs reference each other by name before either
	// binding is final.
	b.reg.Forward(name, name)

	var generics []string
	for i := 0; i < t.TypeParams().Len(); i++ {
		generics = append(generics, t.TypeParams().At(i).Obj().Name())
	}

	st := t.Underlying().(*types.Struct)
	fields, err := b.structFields(st)
	if err != nil {
		return "", errors.Wrapf(err, "deriving fields of '%v'", name)
	}

	if _, err := b.reg.Object(bind.Object{
		Name:     name,
		Generics: generics,
		Fields:   fields,
	}); err != nil {
		return "", err
	}
	b.done[name] = true
	return name, nil
}

func (b *builder) structFields(st *types.Struct) ([]bind.Field, error) {
	var out []bind.Field
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}
		tag := parseJSONTag(st.Tag(i))
		if tag.skip {
			continue
		}

		if f.Embedded() && tag.name == "" {
			// encoding/json inlines untagged embedded structs, through
			// pointers too. A name tag or a non-struct embed serializes as
			// a regular field instead.
			et := f.Type()
			if p, ok := et.(*types.Pointer); ok {
				et = p.Elem()
			}
			if est, ok := et.Underlying().(*types.Struct); ok {
				efs, err := b.structFields(est)
				if err != nil {
					return nil, errors.Wrapf(err, "flattening embedded '%v'", f.Name())
				}
				out = append(out, efs...)
				continue
			}
		}

		ft, err := b.typeID(f.Type())
		if err != nil {
			return nil, errors.Wrapf(err, "parsing field '%v'", f.Name())
		}
		out = append(out, bind.Field{
			Name:     f.Name(),
			JSONKey:  tag.name,
			Type:     ft,
			Optional: tag.omitempty,
		})
	}
	return out, nil
}

type jsonTag struct {
	name      string
	skip      bool
	omitempty bool
}

func parseJSONTag(tag string) jsonTag {
	v, ok := reflect.StructTag(tag).Lookup("json")
	if !ok {
		return jsonTag{}
	}
	parts := strings.Split(v, ",")
	ret := jsonTag{name: parts[0], skip: parts[0] == "-" && len(parts) == 1}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			ret.omitempty = true
		}
	}
	return ret
}

func basicID(t *types.Basic) (string, error) {
	switch t.Kind() {
	case types.String:
		return bind.String, nil
	case types.Bool:
		return bind.Bool, nil
	case types.Int, types.Int8, types.Int16, types.Int32,
		types.Uint, types.Uint8, types.Uint16, types.Uint32:
		return bind.Int, nil
	case types.Int64, types.Uint64:
		return bind.Int64, nil
	case types.Float32, types.Float64:
		return bind.Float, nil
	default:
		return "", errors.Errorf("unsupported basic type '%v'", t.Name())
	}
}

func isByte(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Uint8
}
