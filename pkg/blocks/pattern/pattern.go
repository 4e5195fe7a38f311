package pattern

import "github.com/linguflow/linguflow/pkg/registry"

// Register adds every descriptor this package contributes — the abstract
// Predicate pattern type, its comparator implementors (text, number and
// list families), and the blocks that consume patterns (TextCondition,
// KeySelector, SchemaValidator) — to reg.
func Register(reg *registry.Registry) error {
	registrars := []func(*registry.Registry) error{
		RegisterPredicate,
		RegisterTextEqual,
		RegisterTextContains,
		RegisterTextHasPrefix,
		RegisterTextHasSuffix,
		RegisterGreaterThan,
		RegisterLessThan,
		RegisterGreaterOrEqualThan,
		RegisterLessOrEqualThan,
		RegisterEqualWithNumber,
		RegisterListContains,
		RegisterListIsEmpty,
		RegisterTextCondition,
		RegisterKeySelector,
		RegisterSchemaValidator,
	}
	for _, register := range registrars {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}
