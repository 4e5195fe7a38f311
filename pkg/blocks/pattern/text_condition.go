package pattern

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/expression"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// TextCondition tags its bound input with whether a condition held:
// either a nested Predicate slot (TextEqual, or any other registered
// Predicate implementor) or a raw expression string evaluated by
// pkg/expression. Exactly one of the two must be set.
type TextCondition struct {
	predicate  Predicate
	expression string
}

func (n *TextCondition) TypeName() string { return "TextCondition" }
func (n *TextCondition) IsInput() bool    { return false }
func (n *TextCondition) IsOutput() bool   { return false }

// Invoke evaluates the condition against the bound "value" input and
// returns a dict tagging it with whether the condition matched, which
// port ("true"/"false") case-routed edges should follow, and the input
// itself for downstream consumption.
func (n *TextCondition) Invoke(_ block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	input := bindings["value"]

	var met bool
	if n.predicate != nil {
		met = n.predicate.Match(input)
	} else {
		result, err := expression.Evaluate(n.expression, input, &expression.Context{Bindings: bindings})
		if err != nil {
			return nil, fmt.Errorf("TextCondition: %w", err)
		}
		met = result
	}

	path := "false"
	if met {
		path = "true"
	}
	return map[string]interface{}{
		"value":         input,
		"condition_met": met,
		"path":          path,
	}, nil
}

// RegisterTextCondition adds the TextCondition descriptor to reg.
func RegisterTextCondition(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "TextCondition",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&TextCondition{}),
		Slots: []registry.Param{
			{Name: "predicate", Type: types.TypeName("Predicate"), Default: nil, HasDefault: true},
			{Name: "expression", Type: types.TypeString, Default: "", HasDefault: true},
		},
		Inports: []registry.Param{
			{Name: "value", Type: types.Any},
		},
		Outport:    types.TypeDict,
		HasOutport: true,
		New:        newTextCondition,
	})
}

func newTextCondition(slots map[string]interface{}) (interface{}, error) {
	predicate, hasPredicate := slots["predicate"].(Predicate)
	expr, _ := slots["expression"].(string)

	switch {
	case hasPredicate && expr != "":
		return nil, fmt.Errorf("TextCondition: exactly one of %q or %q may be set, got both", "predicate", "expression")
	case hasPredicate:
		return &TextCondition{predicate: predicate}, nil
	case expr != "":
		return &TextCondition{expression: expr}, nil
	default:
		return nil, fmt.Errorf("TextCondition: one of %q or %q is required", "predicate", "expression")
	}
}
