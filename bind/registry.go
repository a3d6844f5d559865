package bind

// Registry is the dispatch table from type ids to bindings. Populate it
// fully before collecting closures; registration and lookup phases are not
// interleaved, so no locking is needed.
type Registry struct {
	bindings map[string]Binding
	// pending holds forward-declared ids whose real binding has not landed
	// yet. Lookup resolves them (the expression is known), Closure rejects
	// them.
	pending map[string]struct{}
}

// NewRegistry returns an empty registry with no bindings at all.
func NewRegistry() *Registry {
	return &Registry{
		bindings: map[string]Binding{},
		pending:  map[string]struct{}{},
	}
}

// Builtin returns a registry pre-populated with the primitive bindings.
func Builtin() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// Register binds id to b. Registering a structurally equal binding twice is
// a no-op; a different binding under the same id is a configuration error.
// A forward-declared id is finalized by its first real registration.
func (r *Registry) Register(id string, b Binding) error {
	if _, fwd := r.pending[id]; fwd {
		delete(r.pending, id)
		r.bindings[id] = b
		return nil
	}
	if old, ok := r.bindings[id]; ok {
		if bindingEqual(old, b) {
			return nil
		}
		return ConflictingBindingError{ID: id}
	}
	r.bindings[id] = b
	return nil
}

// Forward declares id with a bare expression so that mutually recursive
// types can compose references to it before its real binding is registered.
// A closure over a still-pending id fails with UnregisteredTypeError.
func (r *Registry) Forward(id, expr string) {
	if _, ok := r.bindings[id]; ok {
		return
	}
	r.bindings[id] = Binding{Expr: expr}
	r.pending[id] = struct{}{}
}

// Lookup returns the binding for id. There is no silent default.
func (r *Registry) Lookup(id string) (Binding, error) {
	b, ok := r.bindings[id]
	if !ok {
		return Binding{}, UnregisteredTypeError{ID: id}
	}
	return b, nil
}
