package control

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/expression"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// Expression transforms its bound "value" input by a user-authored
// expr-lang/expr expression, with every other bound port visible to the
// expression as a named binding.
type Expression struct {
	expression string
}

func (n *Expression) TypeName() string { return "Expression" }
func (n *Expression) IsInput() bool    { return false }
func (n *Expression) IsOutput() bool   { return false }

// Invoke evaluates the configured expression against the bound "value"
// input, exposing every bound port (including "value" itself) to the
// expression as a named binding.
func (n *Expression) Invoke(_ block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	result, err := expression.EvaluateExpression(n.expression, bindings["value"], &expression.Context{
		Bindings: bindings,
	})
	if err != nil {
		return nil, fmt.Errorf("Expression: %w", err)
	}
	return result, nil
}

// Register adds the Expression and JoinList descriptors to reg.
func Register(reg *registry.Registry) error {
	if err := registerExpression(reg); err != nil {
		return err
	}
	return registerJoinList(reg)
}

func registerExpression(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "Expression",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&Expression{}),
		Slots: []registry.Param{
			{Name: "expression", Type: types.TypeString},
		},
		Inports: []registry.Param{
			{Name: "value", Type: types.Any},
		},
		Outport:    types.Any,
		HasOutport: true,
		New:        newExpression,
	})
}

func newExpression(slots map[string]interface{}) (interface{}, error) {
	expr, ok := slots["expression"].(string)
	if !ok || expr == "" {
		return nil, fmt.Errorf("Expression: slot %q is required", "expression")
	}
	return &Expression{expression: expr}, nil
}
