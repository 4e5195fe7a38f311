package pattern

import (
	"fmt"
	"reflect"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// TextEqual is a Predicate matching a string value against a fixed
// comparison value, optionally ignoring case.
type TextEqual struct {
	value           string
	caseInsensitive bool
	caser           cases.Caser
}

// Match reports whether value, when it is a string, equals the
// TextEqual's configured comparison value. A non-string value never
// matches.
func (p *TextEqual) Match(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	if !p.caseInsensitive {
		return s == p.value
	}
	return p.caser.String(s) == p.caser.String(p.value)
}

// RegisterTextEqual adds the TextEqual descriptor to reg.
func RegisterTextEqual(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "TextEqual",
		Category: registry.CategoryType,
		Impl:     reflect.TypeOf(&TextEqual{}),
		Slots: []registry.Param{
			{Name: "value", Type: types.TypeString},
			{Name: "case_insensitive", Type: types.TypeBoolean, Default: false, HasDefault: true},
		},
		New: newTextEqual,
	})
}

func newTextEqual(slots map[string]interface{}) (interface{}, error) {
	value, ok := slots["value"].(string)
	if !ok {
		return nil, fmt.Errorf("TextEqual: slot %q must be a string", "value")
	}
	caseInsensitive, _ := slots["case_insensitive"].(bool)
	return &TextEqual{
		value:           value,
		caseInsensitive: caseInsensitive,
		caser:           cases.Lower(language.Und),
	}, nil
}
