package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/linguflow/linguflow/pkg/types"
)

// Resolver is the read-only query facade over a frozen Registry.
// Candidates results are memoized per name for the resolver's lifetime;
// Lookup, Relookup and the signature queries read the frozen registry
// on every call.
type Resolver struct {
	reg   *Registry
	names []string

	candidatesMu    sync.Mutex
	candidatesCache map[string][]string
}

// NewResolver freezes reg (subsequent Register calls fail) and validates
// that every slot/inport/outport type referenced by a non-builtin
// descriptor is itself registered. Returns an *UnregisteredError on the
// first violation found, in registration order, for deterministic boot
// failure.
func NewResolver(reg *Registry) (*Resolver, error) {
	reg.freeze()
	descs := reg.descriptors()

	known := make(map[types.TypeName]bool, len(descs))
	for _, d := range descs {
		known[types.TypeName(d.Name)] = true
		if d.Alias != d.Name {
			known[types.TypeName(d.Alias)] = true
		}
	}

	checkRef := func(name string, field string, t types.TypeName) error {
		if types.IsBuiltin(t) || known[t] {
			return nil
		}
		return &UnregisteredError{Name: name, Reference: string(t), Field: field}
	}

	for _, d := range descs {
		for _, s := range d.Slots {
			if err := checkRef(d.Name, "slot", s.Type); err != nil {
				return nil, err
			}
		}
		for _, p := range d.Inports {
			if err := checkRef(d.Name, "inport", p.Type); err != nil {
				return nil, err
			}
		}
		if d.HasOutport {
			if err := checkRef(d.Name, "outport", d.Outport); err != nil {
				return nil, err
			}
		}
	}

	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.Name)
	}
	sort.Strings(names)

	return &Resolver{
		reg:             reg,
		names:           names,
		candidatesCache: make(map[string][]string),
	}, nil
}

// MustNewResolver constructs a Resolver and panics on error, mirroring
// Registry.MustRegister's panic-on-boot-failure pattern.
func MustNewResolver(reg *Registry) *Resolver {
	r, err := NewResolver(reg)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Resolver) descriptor(name string) *Descriptor {
	r.reg.mu.Lock()
	defer r.reg.mu.Unlock()
	return r.reg.byName[name]
}

// Names returns every registered name.
func (r *Resolver) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Lookup returns the named descriptor's field, or nil if the name is
// absent. field defaults to "impl" when empty.
func (r *Resolver) Lookup(name string, field string) interface{} {
	d := r.descriptor(name)
	if d == nil {
		return nil
	}
	if field == "" {
		field = "impl"
	}
	switch field {
	case "impl":
		return d.Impl
	case "alias":
		return d.Alias
	case "category":
		return d.Category
	case "dir":
		return d.Dir
	case "abstract":
		return d.Abstract
	case "outport":
		if !d.HasOutport {
			return nil
		}
		return d.Outport
	case "new":
		return d.New
	default:
		return nil
	}
}

// Relookup reverse-maps an impl type to its registered name, or ("",
// false) if absent.
func (r *Resolver) Relookup(impl reflect.Type) (string, bool) {
	r.reg.mu.Lock()
	defer r.reg.mu.Unlock()
	d, ok := r.reg.byImpl[impl]
	if !ok {
		return "", false
	}
	return d.Name, true
}

// IsAbstract reports whether impl declares at least one unimplemented
// operation and so cannot be constructed directly.
func (r *Resolver) IsAbstract(impl reflect.Type) bool {
	r.reg.mu.Lock()
	d, ok := r.reg.byImpl[impl]
	r.reg.mu.Unlock()
	if !ok {
		return false
	}
	return d.Abstract
}

// Candidates returns every registered, non-abstract type whose impl is a
// subtype of (or equal to, for a concrete target) the named type. Results
// are memoized per name.
func (r *Resolver) Candidates(name string) []string {
	r.candidatesMu.Lock()
	if cached, ok := r.candidatesCache[name]; ok {
		r.candidatesMu.Unlock()
		out := make([]string, len(cached))
		copy(out, cached)
		return out
	}
	r.candidatesMu.Unlock()

	target := r.descriptor(name)
	if target == nil || target.Impl == nil {
		return nil
	}

	var out []string
	for _, d := range r.reg.descriptors() {
		if d.Abstract || d.Impl == nil {
			continue
		}
		if implementsOrEquals(d.Impl, target.Impl) {
			out = append(out, d.Name)
		}
	}
	sort.Strings(out)

	r.candidatesMu.Lock()
	r.candidatesCache[name] = out
	r.candidatesMu.Unlock()

	cp := make([]string, len(out))
	copy(cp, out)
	return cp
}

func implementsOrEquals(impl, target reflect.Type) bool {
	if target.Kind() == reflect.Interface {
		return impl.Implements(target) || reflect.PointerTo(impl).Implements(target)
	}
	return impl == target
}

// Slots returns the ordered constructor parameter list for name, or nil
// if name is not registered.
func (r *Resolver) Slots(name string) []Param {
	d := r.descriptor(name)
	if d == nil {
		return nil
	}
	return append([]Param(nil), d.Slots...)
}

// Inports returns the ordered invocation parameter list for a block, or
// nil if name is not registered or not a block.
func (r *Resolver) Inports(name string) []Param {
	d := r.descriptor(name)
	if d == nil {
		return nil
	}
	return append([]Param(nil), d.Inports...)
}

// Outport returns a block's declared return type, or (zero value, false)
// if name is not registered or has no outport.
func (r *Resolver) Outport(name string) (types.TypeName, bool) {
	d := r.descriptor(name)
	if d == nil || !d.HasOutport {
		return "", false
	}
	return d.Outport, true
}

// HasVariadicKeyword reports whether name's invocation signature absorbs
// unknown ports.
func (r *Resolver) HasVariadicKeyword(name string) bool {
	d := r.descriptor(name)
	if d == nil {
		return false
	}
	for _, p := range d.Inports {
		if p.Kind == KindVariadicKeyword {
			return true
		}
	}
	return false
}

// Construct invokes the registered constructor for name with the given
// already-resolved slot values. Returns an error mentioning name if the
// name is unregistered or abstract, in a form the node constructor can
// wrap with positional context.
func (r *Resolver) Construct(name string, slots map[string]interface{}) (interface{}, error) {
	d := r.descriptor(name)
	if d == nil {
		return nil, fmt.Errorf("name not found: %s", name)
	}
	if d.Abstract {
		return nil, fmt.Errorf("abstract type cannot be constructed: %s", name)
	}
	if d.New == nil {
		return nil, fmt.Errorf("name not found: %s", name)
	}
	inst, err := d.New(slots)
	if err != nil {
		return nil, err
	}
	return inst, nil
}
