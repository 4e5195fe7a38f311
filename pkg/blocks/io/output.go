package io

import (
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// Output is the single sink of a graph: the scheduler reads a run's
// result from whichever node reports IsOutput. Its one required inport,
// "value", must be filled by a named edge.
type Output struct{}

func (n *Output) TypeName() string { return "Output" }
func (n *Output) IsInput() bool    { return false }
func (n *Output) IsOutput() bool   { return true }

// Invoke returns whatever value the "value" inport was bound to.
func (n *Output) Invoke(_ block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	return bindings["value"], nil
}

// registerOutput adds the Output descriptor to reg.
func registerOutput(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "Output",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&Output{}),
		Inports: []registry.Param{
			{Name: "value", Type: types.Any},
		},
		New: func(map[string]interface{}) (interface{}, error) {
			return &Output{}, nil
		},
	})
}
