package registry

import (
	"reflect"
	"testing"

	"github.com/linguflow/linguflow/pkg/types"
)

type abstractThing interface{ Thing() }
type concreteThingA struct{}

func (concreteThingA) Thing() {}

type concreteThingB struct{}

func (concreteThingB) Thing() {}

func TestNewResolverRejectsUnregisteredSlotType(t *testing.T) {
	reg := New()
	reg.MustRegister(Descriptor{
		Name:     "Widget",
		Category: CategoryType,
		Impl:     reflect.TypeOf(&concreteThingA{}),
		Slots:    []Param{{Name: "value", Type: "MissingType"}},
	})

	_, err := NewResolver(reg)
	unregErr, ok := err.(*UnregisteredError)
	if !ok {
		t.Fatalf("error = %v (%T), want *UnregisteredError", err, err)
	}
	if unregErr.Name != "Widget" || unregErr.Reference != "MissingType" || unregErr.Field != "slot" {
		t.Errorf("got %+v, want {Name:Widget Reference:MissingType Field:slot}", unregErr)
	}
}

func TestNewResolverRejectsUnregisteredInportType(t *testing.T) {
	reg := New()
	reg.MustRegister(Descriptor{
		Name:     "Adder",
		Category: CategoryBlock,
		Inports:  []Param{{Name: "left", Type: "MissingType"}},
	})

	_, err := NewResolver(reg)
	unregErr, ok := err.(*UnregisteredError)
	if !ok {
		t.Fatalf("error = %v (%T), want *UnregisteredError", err, err)
	}
	if unregErr.Field != "inport" {
		t.Errorf("Field = %q, want inport", unregErr.Field)
	}
}

func TestNewResolverRejectsUnregisteredOutportType(t *testing.T) {
	reg := New()
	reg.MustRegister(Descriptor{
		Name:       "Source",
		Category:   CategoryBlock,
		HasOutport: true,
		Outport:    "MissingType",
	})

	_, err := NewResolver(reg)
	unregErr, ok := err.(*UnregisteredError)
	if !ok {
		t.Fatalf("error = %v (%T), want *UnregisteredError", err, err)
	}
	if unregErr.Field != "outport" {
		t.Errorf("Field = %q, want outport", unregErr.Field)
	}
}

func TestNewResolverAllowsBuiltinTypeReferences(t *testing.T) {
	reg := New()
	reg.MustRegister(Descriptor{
		Name:     "Widget",
		Category: CategoryType,
		Impl:     reflect.TypeOf(&concreteThingA{}),
		Slots:    []Param{{Name: "value", Type: types.TypeString}},
	})
	if _, err := NewResolver(reg); err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
}

func TestMustNewResolverPanicsOnUnregisteredReference(t *testing.T) {
	reg := New()
	reg.MustRegister(Descriptor{
		Name:     "Widget",
		Category: CategoryType,
		Slots:    []Param{{Name: "value", Type: "MissingType"}},
	})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustNewResolver() did not panic on unregistered reference")
		}
	}()
	MustNewResolver(reg)
}

func newCandidateResolver(t *testing.T) *Resolver {
	t.Helper()
	reg := New()
	reg.MustRegister(Descriptor{
		Name:     "AbstractThing",
		Category: CategoryType,
		Abstract: true,
		Impl:     reflect.TypeOf((*abstractThing)(nil)).Elem(),
	})
	reg.MustRegister(Descriptor{
		Name:     "ConcreteThingA",
		Category: CategoryType,
		Impl:     reflect.TypeOf(concreteThingA{}),
		New:      func(map[string]interface{}) (interface{}, error) { return concreteThingA{}, nil },
	})
	reg.MustRegister(Descriptor{
		Name:     "ConcreteThingB",
		Category: CategoryType,
		Impl:     reflect.TypeOf(concreteThingB{}),
		New:      func(map[string]interface{}) (interface{}, error) { return concreteThingB{}, nil },
	})
	return MustNewResolver(reg)
}

func TestCandidatesReturnsEveryConcreteImplementor(t *testing.T) {
	resolver := newCandidateResolver(t)

	candidates := resolver.Candidates("AbstractThing")
	want := []string{"ConcreteThingA", "ConcreteThingB"}
	if len(candidates) != len(want) {
		t.Fatalf("Candidates() = %v, want %v", candidates, want)
	}
	for i, name := range want {
		if candidates[i] != name {
			t.Errorf("Candidates()[%d] = %q, want %q", i, candidates[i], name)
		}
	}
}

func TestCandidatesExcludesAbstractAndUnrelatedTypes(t *testing.T) {
	resolver := newCandidateResolver(t)

	candidates := resolver.Candidates("AbstractThing")
	for _, name := range candidates {
		if name == "AbstractThing" {
			t.Error("Candidates() included the abstract type itself")
		}
	}
}

func TestLookupAndRelookup(t *testing.T) {
	resolver := newCandidateResolver(t)

	if got := resolver.Lookup("ConcreteThingA", "category"); got != CategoryType {
		t.Errorf("Lookup(category) = %v, want CategoryType", got)
	}
	if got := resolver.Lookup("does-not-exist", "category"); got != nil {
		t.Errorf("Lookup() for unknown name = %v, want nil", got)
	}

	name, ok := resolver.Relookup(reflect.TypeOf(concreteThingA{}))
	if !ok || name != "ConcreteThingA" {
		t.Errorf("Relookup() = (%q, %v), want (ConcreteThingA, true)", name, ok)
	}
}

func TestIsAbstract(t *testing.T) {
	resolver := newCandidateResolver(t)

	if !resolver.IsAbstract(reflect.TypeOf((*abstractThing)(nil)).Elem()) {
		t.Error("IsAbstract(AbstractThing) = false, want true")
	}
	if resolver.IsAbstract(reflect.TypeOf(concreteThingA{})) {
		t.Error("IsAbstract(ConcreteThingA) = true, want false")
	}
}
