package subapp

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// SubAppDict invokes another application by id, passing a dict as its
// payload. A schema-validated invocation chains a SchemaValidator block
// ahead of this one's "value" inport.
type SubAppDict struct {
	appID  string
	caller *Caller
}

func (n *SubAppDict) TypeName() string { return "SubAppDict" }
func (n *SubAppDict) IsInput() bool    { return false }
func (n *SubAppDict) IsOutput() bool   { return false }

func (n *SubAppDict) Invoke(rc block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	value, _ := bindings["value"].(map[string]interface{})
	return n.caller.call(rc, n.appID, value)
}

func registerSubAppDict(reg *registry.Registry, c *Caller) error {
	return reg.Register(registry.Descriptor{
		Name:     "SubAppDict",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&SubAppDict{}),
		Slots: []registry.Param{
			{Name: "app_id", Type: types.TypeString},
		},
		Inports: []registry.Param{
			{Name: "value", Type: types.TypeDict},
		},
		Outport:    types.Any,
		HasOutport: true,
		New: func(slots map[string]interface{}) (interface{}, error) {
			appID, ok := slots["app_id"].(string)
			if !ok || appID == "" {
				return nil, fmt.Errorf("SubAppDict: slot %q is required", "app_id")
			}
			return &SubAppDict{appID: appID, caller: c}, nil
		},
	})
}
