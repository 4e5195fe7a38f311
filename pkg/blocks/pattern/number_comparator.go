package pattern

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// numberComparator implements Predicate by comparing a float64 input value
// against a fixed comparison value using cmp. Non-numeric inputs never
// match. It backs GreaterThan, LessThan, GreaterOrEqualThan,
// LessOrEqualThan and EqualWithNumber, which differ only in which
// comparison result they accept.
type numberComparator struct {
	value float64
	cmp   func(input, value float64) bool
}

// Match reports whether value, when numeric, satisfies the comparator's
// configured comparison against its fixed value.
func (p *numberComparator) Match(value interface{}) bool {
	f, ok := toFloat64(value)
	if !ok {
		return false
	}
	return p.cmp(f, p.value)
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func numberComparatorValue(name string, slots map[string]interface{}) (float64, error) {
	value, ok := toFloat64(slots["value"])
	if !ok {
		return 0, fmt.Errorf("%s: slot %q must be a number", name, "value")
	}
	return value, nil
}

// GreaterThan is a Predicate matching numbers strictly greater than a
// fixed value.
type GreaterThan struct{ numberComparator }

// LessThan is a Predicate matching numbers strictly less than a fixed
// value.
type LessThan struct{ numberComparator }

// GreaterOrEqualThan is a Predicate matching numbers greater than or equal
// to a fixed value.
type GreaterOrEqualThan struct{ numberComparator }

// LessOrEqualThan is a Predicate matching numbers less than or equal to a
// fixed value.
type LessOrEqualThan struct{ numberComparator }

// EqualWithNumber is a Predicate matching numbers equal to a fixed value.
type EqualWithNumber struct{ numberComparator }

// RegisterGreaterThan adds the GreaterThan descriptor to reg.
func RegisterGreaterThan(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "GreaterThan",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&GreaterThan{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeNumber}},
		New:      newGreaterThan,
	})
}

func newGreaterThan(slots map[string]interface{}) (interface{}, error) {
	value, err := numberComparatorValue("GreaterThan", slots)
	if err != nil {
		return nil, err
	}
	return &GreaterThan{numberComparator{value: value, cmp: func(input, v float64) bool { return input > v }}}, nil
}

// RegisterLessThan adds the LessThan descriptor to reg.
func RegisterLessThan(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "LessThan",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&LessThan{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeNumber}},
		New:      newLessThan,
	})
}

func newLessThan(slots map[string]interface{}) (interface{}, error) {
	value, err := numberComparatorValue("LessThan", slots)
	if err != nil {
		return nil, err
	}
	return &LessThan{numberComparator{value: value, cmp: func(input, v float64) bool { return input < v }}}, nil
}

// RegisterGreaterOrEqualThan adds the GreaterOrEqualThan descriptor to reg.
func RegisterGreaterOrEqualThan(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "GreaterOrEqualThan",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&GreaterOrEqualThan{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeNumber}},
		New:      newGreaterOrEqualThan,
	})
}

func newGreaterOrEqualThan(slots map[string]interface{}) (interface{}, error) {
	value, err := numberComparatorValue("GreaterOrEqualThan", slots)
	if err != nil {
		return nil, err
	}
	return &GreaterOrEqualThan{numberComparator{value: value, cmp: func(input, v float64) bool { return input >= v }}}, nil
}

// RegisterLessOrEqualThan adds the LessOrEqualThan descriptor to reg.
func RegisterLessOrEqualThan(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "LessOrEqualThan",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&LessOrEqualThan{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeNumber}},
		New:      newLessOrEqualThan,
	})
}

func newLessOrEqualThan(slots map[string]interface{}) (interface{}, error) {
	value, err := numberComparatorValue("LessOrEqualThan", slots)
	if err != nil {
		return nil, err
	}
	return &LessOrEqualThan{numberComparator{value: value, cmp: func(input, v float64) bool { return input <= v }}}, nil
}

// RegisterEqualWithNumber adds the EqualWithNumber descriptor to reg.
func RegisterEqualWithNumber(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "EqualWithNumber",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&EqualWithNumber{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeNumber}},
		New:      newEqualWithNumber,
	})
}

func newEqualWithNumber(slots map[string]interface{}) (interface{}, error) {
	value, err := numberComparatorValue("EqualWithNumber", slots)
	if err != nil {
		return nil, err
	}
	return &EqualWithNumber{numberComparator{value: value, cmp: func(input, v float64) bool { return input == v }}}, nil
}
