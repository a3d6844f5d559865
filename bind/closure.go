package bind

import "github.com/utrack/gangway/decl"

// Closure collects every declaration reachable from the given roots via
// parent links. Each binding is visited once, so mutually recursive types
// terminate, and structurally equal declarations are emitted once. Any
// lookup failure aborts the whole collection with no partial output.
func (r *Registry) Closure(roots ...string) ([]decl.Declaration, error) {
	c := &collector{
		reg:     r,
		visited: map[string]bool{},
		emitted: map[string]struct{}{},
	}
	for _, root := range roots {
		if err := c.visit(root); err != nil {
			return nil, err
		}
	}
	return c.out, nil
}

type collector struct {
	reg     *Registry
	visited map[string]bool
	emitted map[string]struct{}
	out     []decl.Declaration
}

func (c *collector) visit(id string) error {
	if c.visited[id] {
		return nil
	}
	c.visited[id] = true

	if _, fwd := c.reg.pending[id]; fwd {
		// A forward declaration that was never finalized is as unusable as
		// a missing one.
		return UnregisteredTypeError{ID: id}
	}
	b, err := c.reg.Lookup(id)
	if err != nil {
		return err
	}

	for _, d := range b.Decls {
		k := d.Key()
		if _, dup := c.emitted[k]; dup {
			continue
		}
		c.emitted[k] = struct{}{}
		c.out = append(c.out, d)
	}

	for _, p := range b.Parents {
		if err := c.visit(p); err != nil {
			return err
		}
	}
	return nil
}
