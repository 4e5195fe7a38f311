package pattern

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// ListContains is a Predicate matching lists that contain a fixed element,
// compared with reflect.DeepEqual. A non-list input never matches.
type ListContains struct{ value interface{} }

// Match reports whether value, when a list, contains the configured
// element.
func (p *ListContains) Match(value interface{}) bool {
	list, ok := value.([]interface{})
	if !ok {
		return false
	}
	for _, item := range list {
		if reflect.DeepEqual(item, p.value) {
			return true
		}
	}
	return false
}

// ListIsEmpty is a Predicate matching lists with no elements. A non-list
// input never matches.
type ListIsEmpty struct{}

// Match reports whether value, when a list, has zero elements.
func (p *ListIsEmpty) Match(value interface{}) bool {
	list, ok := value.([]interface{})
	if !ok {
		return false
	}
	return len(list) == 0
}

// RegisterListContains adds the ListContains descriptor to reg.
func RegisterListContains(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "ListContains",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&ListContains{}),
		Slots: []registry.Param{
			{Name: "value", Type: types.Any},
		},
		New: func(slots map[string]interface{}) (interface{}, error) {
			value, ok := slots["value"]
			if !ok {
				return nil, fmt.Errorf("ListContains: slot %q is required", "value")
			}
			return &ListContains{value}, nil
		},
	})
}

// RegisterListIsEmpty adds the ListIsEmpty descriptor to reg.
func RegisterListIsEmpty(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "ListIsEmpty",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&ListIsEmpty{}),
		New: func(map[string]interface{}) (interface{}, error) {
			return &ListIsEmpty{}, nil
		},
	})
}
