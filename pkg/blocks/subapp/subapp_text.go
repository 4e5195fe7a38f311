package subapp

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// SubAppText invokes another application by id, passing a plain string
// as its payload.
type SubAppText struct {
	appID  string
	caller *Caller
}

func (n *SubAppText) TypeName() string { return "SubAppText" }
func (n *SubAppText) IsInput() bool    { return false }
func (n *SubAppText) IsOutput() bool   { return false }

func (n *SubAppText) Invoke(rc block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	value, _ := bindings["value"].(string)
	return n.caller.call(rc, n.appID, value)
}

func registerSubAppText(reg *registry.Registry, c *Caller) error {
	return reg.Register(registry.Descriptor{
		Name:     "SubAppText",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&SubAppText{}),
		Slots: []registry.Param{
			{Name: "app_id", Type: types.TypeString},
		},
		Inports: []registry.Param{
			{Name: "value", Type: types.TypeString},
		},
		Outport:    types.Any,
		HasOutport: true,
		New: func(slots map[string]interface{}) (interface{}, error) {
			appID, ok := slots["app_id"].(string)
			if !ok || appID == "" {
				return nil, fmt.Errorf("SubAppText: slot %q is required", "app_id")
			}
			return &SubAppText{appID: appID, caller: c}, nil
		},
	})
}
