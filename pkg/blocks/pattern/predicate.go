package pattern

import (
	"reflect"

	"github.com/linguflow/linguflow/pkg/registry"
)

// Predicate is the abstract pattern type a TextCondition slot accepts: any
// registered type implementing Match can be wired in as a condition's
// matcher. It is never constructed directly — only concrete implementors
// like TextEqual are.
type Predicate interface {
	Match(value interface{}) bool
}

// RegisterPredicate adds the abstract Predicate descriptor to reg. Block
// and pattern authors elsewhere in pkg/blocks register their own concrete
// implementors against the same Predicate name via Candidates.
func RegisterPredicate(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "Predicate",
		Category: registry.CategoryType,
		Abstract: true,
		Impl:     reflect.TypeOf((*Predicate)(nil)).Elem(),
	})
}
