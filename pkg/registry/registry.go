package registry

import (
	"reflect"
	"sync"

	"github.com/linguflow/linguflow/pkg/types"
)

// Category is the kind of catalog entry a Descriptor represents.
type Category string

const (
	CategoryBlock   Category = "block"
	CategoryType    Category = "type"
	CategoryBuiltin Category = "builtin"
)

// Kind classifies a constructor/invocation parameter.
type Kind string

const (
	KindPositional      Kind = "positional"
	KindVariadicKeyword Kind = "variadic_keyword"
)

// Param is one parameter of a slot, inport, or outport signature.
type Param struct {
	Name       string
	Type       types.TypeName
	Default    interface{}
	HasDefault bool
	Kind       Kind
}

// Constructor builds a value from already-resolved slot values (nested
// slot specs have already been constructed into instances or passed
// through by the Node Constructor before this is called). A block
// descriptor's Constructor returns a block.Instance; a pattern
// descriptor's returns whatever Go value the pattern represents (a
// predicate, a validator, ...) for the Node Constructor to hand to
// whichever block declared a slot of that type.
type Constructor func(slots map[string]interface{}) (interface{}, error)

// Descriptor is one entry of the registry: a named block or pattern type
// along with the shape needed to construct and invoke it.
type Descriptor struct {
	Name     string
	Alias    string
	Category Category
	Dir      string

	// Impl identifies the underlying constructible/abstract Go type for
	// uniqueness checks and reverse lookup. For an abstract pattern this
	// is the interface type (Abstract == true); for a concrete block or
	// pattern it is the concrete struct type New actually builds.
	Impl reflect.Type

	// Abstract is true when Impl declares behavior without providing it
	// (an interface type): it cannot be constructed directly.
	Abstract bool

	Slots      []Param
	Inports    []Param // blocks only
	Outport    types.TypeName
	HasOutport bool // blocks only

	New Constructor
}

// Registry is the process-wide, write-once-then-frozen catalog.
type Registry struct {
	mu     sync.Mutex
	frozen bool
	byName map[string]*Descriptor
	byImpl map[reflect.Type]*Descriptor
	order  []string
}

// New creates an empty, mutable Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]*Descriptor),
		byImpl: make(map[reflect.Type]*Descriptor),
	}
}

// Register adds a descriptor to the registry. Returns a
// *DuplicatedNameError or *DuplicatedTypeError on collision, or an error
// if the registry is already frozen (a Resolver has been constructed).
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errFrozen
	}
	if d.Name == "" {
		return errEmptyName
	}
	if d.Alias == "" {
		d.Alias = d.Name
	}
	if _, exists := r.byName[d.Name]; exists {
		return &DuplicatedNameError{Name: d.Name}
	}
	if d.Impl != nil {
		if existing, exists := r.byImpl[d.Impl]; exists {
			return &DuplicatedTypeError{Name: d.Name, Impl: existing.Impl.String()}
		}
	}

	cp := d
	r.byName[d.Name] = &cp
	if d.Impl != nil {
		r.byImpl[d.Impl] = &cp
	}
	r.order = append(r.order, d.Name)
	return nil
}

// MustRegister registers a descriptor and panics on error. Intended for
// a package's Register(reg *Registry) error function, called once per
// built-in descriptor during assembly of the default registry.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// freeze marks the registry immutable. Idempotent.
func (r *Registry) freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// descriptors returns a stable-ordered snapshot of all registered
// descriptors (registration order), used by Resolver construction and by
// Candidates.
func (r *Registry) descriptors() []*Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
