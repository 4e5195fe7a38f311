package subapp

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// SubAppList invokes another application by id, passing a list as its
// payload.
type SubAppList struct {
	appID  string
	caller *Caller
}

func (n *SubAppList) TypeName() string { return "SubAppList" }
func (n *SubAppList) IsInput() bool    { return false }
func (n *SubAppList) IsOutput() bool   { return false }

func (n *SubAppList) Invoke(rc block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	value, _ := bindings["value"].([]interface{})
	return n.caller.call(rc, n.appID, value)
}

func registerSubAppList(reg *registry.Registry, c *Caller) error {
	return reg.Register(registry.Descriptor{
		Name:     "SubAppList",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&SubAppList{}),
		Slots: []registry.Param{
			{Name: "app_id", Type: types.TypeString},
		},
		Inports: []registry.Param{
			{Name: "value", Type: types.TypeList},
		},
		Outport:    types.Any,
		HasOutport: true,
		New: func(slots map[string]interface{}) (interface{}, error) {
			appID, ok := slots["app_id"].(string)
			if !ok || appID == "" {
				return nil, fmt.Errorf("SubAppList: slot %q is required", "app_id")
			}
			return &SubAppList{appID: appID, caller: c}, nil
		},
	})
}
