package pattern

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// TextContains is a Predicate matching strings that contain a fixed
// substring. A non-string input never matches.
type TextContains struct{ value string }

// Match reports whether value, when a string, contains the configured
// substring.
func (p *TextContains) Match(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.Contains(s, p.value)
}

// TextHasPrefix is a Predicate matching strings that start with a fixed
// prefix. A non-string input never matches.
type TextHasPrefix struct{ value string }

// Match reports whether value, when a string, starts with the configured
// prefix.
func (p *TextHasPrefix) Match(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(s, p.value)
}

// TextHasSuffix is a Predicate matching strings that end with a fixed
// suffix. A non-string input never matches.
type TextHasSuffix struct{ value string }

// Match reports whether value, when a string, ends with the configured
// suffix.
func (p *TextHasSuffix) Match(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.HasSuffix(s, p.value)
}

func textComparatorValue(name string, slots map[string]interface{}) (string, error) {
	value, ok := slots["value"].(string)
	if !ok {
		return "", fmt.Errorf("%s: slot %q must be a string", name, "value")
	}
	return value, nil
}

// RegisterTextContains adds the TextContains descriptor to reg.
func RegisterTextContains(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "TextContains",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&TextContains{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeString}},
		New:      newTextContains,
	})
}

func newTextContains(slots map[string]interface{}) (interface{}, error) {
	value, err := textComparatorValue("TextContains", slots)
	if err != nil {
		return nil, err
	}
	return &TextContains{value}, nil
}

// RegisterTextHasPrefix adds the TextHasPrefix descriptor to reg.
func RegisterTextHasPrefix(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "TextHasPrefix",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&TextHasPrefix{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeString}},
		New:      newTextHasPrefix,
	})
}

func newTextHasPrefix(slots map[string]interface{}) (interface{}, error) {
	value, err := textComparatorValue("TextHasPrefix", slots)
	if err != nil {
		return nil, err
	}
	return &TextHasPrefix{value}, nil
}

// RegisterTextHasSuffix adds the TextHasSuffix descriptor to reg.
func RegisterTextHasSuffix(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "TextHasSuffix",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&TextHasSuffix{}),
		Slots:    []registry.Param{{Name: "value", Type: types.TypeString}},
		New:      newTextHasSuffix,
	})
}

func newTextHasSuffix(slots map[string]interface{}) (interface{}, error) {
	value, err := textComparatorValue("TextHasSuffix", slots)
	if err != nil {
		return nil, err
	}
	return &TextHasSuffix{value}, nil
}
