package bind

import "fmt"

// UnregisteredTypeError reports a type id without a binding reachable from a
// generation root. The whole run aborts; there is no partial output.
type UnregisteredTypeError struct {
	ID string
}

func (e UnregisteredTypeError) Error() string {
	return fmt.Sprintf("no binding registered for type '%v'", e.ID)
}

// ConflictingBindingError reports two incompatible bindings registered under
// one type id. Re-registering a structurally equal binding is fine.
type ConflictingBindingError struct {
	ID string
}

func (e ConflictingBindingError) Error() string {
	return fmt.Sprintf("conflicting binding registered for type '%v'", e.ID)
}

// MalformedMetadataError reports structurally invalid synthesizer input,
// e.g. an empty field or constructor name.
type MalformedMetadataError struct {
	Reason string
}

func (e MalformedMetadataError) Error() string {
	return "malformed type metadata: " + e.Reason
}
