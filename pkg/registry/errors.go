package registry

import "fmt"

// DuplicatedNameError is raised when two descriptors register the same
// name. Names are globally unique across the catalog.
type DuplicatedNameError struct {
	Name string
}

func (e *DuplicatedNameError) Error() string {
	return fmt.Sprintf("duplicated name: %q is already registered", e.Name)
}

// DuplicatedTypeError is raised when two descriptors share the same impl.
// Impls are globally unique across the catalog.
type DuplicatedTypeError struct {
	Name string
	Impl string
}

func (e *DuplicatedTypeError) Error() string {
	return fmt.Sprintf("duplicated type: impl %q for %q is already registered", e.Impl, e.Name)
}

// UnregisteredError is raised at Resolver construction when a slot,
// inport, or outport references a type name that was never registered.
type UnregisteredError struct {
	Name      string // the descriptor that holds the bad reference
	Reference string // the referenced, unregistered type name
	Field     string // "slot", "inport", or "outport"
}

func (e *UnregisteredError) Error() string {
	return fmt.Sprintf("unregistered type: %s of %q references unregistered type %q", e.Field, e.Name, e.Reference)
}
