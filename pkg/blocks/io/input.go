package io

import (
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// Input is the single entry point of a graph. The scheduler calls
// SetInput with the run's payload before evaluating any node, then
// invokes Input like any other block; Invoke simply returns whatever
// SetInput last stored.
type Input struct {
	value interface{}
}

func (n *Input) TypeName() string { return "Input" }
func (n *Input) IsInput() bool    { return true }
func (n *Input) IsOutput() bool   { return false }

// SetInput stores the run's payload. Called once, before the graph is
// evaluated.
func (n *Input) SetInput(value interface{}) {
	n.value = value
}

// Invoke ignores bindings — Input has no declared inports — and returns
// the payload SetInput stored.
func (n *Input) Invoke(block.RunContext, map[string]interface{}) (interface{}, error) {
	return n.value, nil
}

// Register adds the Input and Output descriptors to reg.
func Register(reg *registry.Registry) error {
	if err := reg.Register(registry.Descriptor{
		Name:       "Input",
		Category:   registry.CategoryBlock,
		Impl:       reflect.TypeOf(&Input{}),
		Outport:    types.Any,
		HasOutport: true,
		New: func(map[string]interface{}) (interface{}, error) {
			return &Input{}, nil
		},
	}); err != nil {
		return err
	}
	return registerOutput(reg)
}
