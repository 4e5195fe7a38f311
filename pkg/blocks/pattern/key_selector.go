package pattern

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// KeySelector looks up a fixed key in its bound dict input. A missing key
// yields a nil result rather than an error, letting a downstream block
// short-circuit on the null the same way any other nil-valued edge would.
type KeySelector struct {
	key string
}

func (n *KeySelector) TypeName() string { return "KeySelector" }
func (n *KeySelector) IsInput() bool    { return false }
func (n *KeySelector) IsOutput() bool   { return false }

// Invoke looks up the configured key in the bound "value" input.
func (n *KeySelector) Invoke(_ block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	input, ok := bindings["value"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("KeySelector: %q input must be a dict, got %T", "value", bindings["value"])
	}
	value, exists := input[n.key]
	if !exists {
		return nil, nil
	}
	return value, nil
}

// RegisterKeySelector adds the KeySelector descriptor to reg.
func RegisterKeySelector(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "KeySelector",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&KeySelector{}),
		Slots: []registry.Param{
			{Name: "key", Type: types.TypeString},
		},
		Inports: []registry.Param{
			{Name: "value", Type: types.TypeDict},
		},
		Outport:    types.Any,
		HasOutport: true,
		New:        newKeySelector,
	})
}

func newKeySelector(slots map[string]interface{}) (interface{}, error) {
	key, ok := slots["key"].(string)
	if !ok || key == "" {
		return nil, fmt.Errorf("KeySelector: slot %q is required", "key")
	}
	return &KeySelector{key: key}, nil
}
