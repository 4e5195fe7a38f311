package control

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// JoinList fills a template once per row of an arbitrary number of
// equal-length list-valued named inputs, zipping them positionally, and
// joins the filled rows with newlines. A template placeholder like
// "{{name}}" is replaced by the value, at the current row index, of the
// input bound to port "name".
type JoinList struct {
	template string
}

func (n *JoinList) TypeName() string { return "JoinList" }
func (n *JoinList) IsInput() bool    { return false }
func (n *JoinList) IsOutput() bool   { return false }

// Invoke zips every bound list-valued port row-wise against the
// configured template and newline-joins the filled rows.
func (n *JoinList) Invoke(_ block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	if len(bindings) == 0 {
		return nil, fmt.Errorf("JoinList: at least one input is required")
	}

	lists := make(map[string][]interface{}, len(bindings))
	rowCount := -1
	for port, value := range bindings {
		list, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("JoinList: input %q must be a list, got %T", port, value)
		}
		if rowCount == -1 {
			rowCount = len(list)
		} else if len(list) != rowCount {
			return nil, fmt.Errorf("JoinList: input %q has %d rows, want %d", port, len(list), rowCount)
		}
		lists[port] = list
	}

	rows := make([]string, rowCount)
	for i := 0; i < rowCount; i++ {
		row := n.template
		for port, list := range lists {
			placeholder := "{{" + port + "}}"
			row = strings.ReplaceAll(row, placeholder, fmt.Sprintf("%v", list[i]))
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n"), nil
}

func registerJoinList(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "JoinList",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&JoinList{}),
		Slots: []registry.Param{
			{Name: "template", Type: types.TypeString},
		},
		Inports: []registry.Param{
			{Name: "*", Type: types.TypeList, Kind: registry.KindVariadicKeyword},
		},
		Outport:    types.TypeString,
		HasOutport: true,
		New:        newJoinList,
	})
}

func newJoinList(slots map[string]interface{}) (interface{}, error) {
	template, ok := slots["template"].(string)
	if !ok || template == "" {
		return nil, fmt.Errorf("JoinList: slot %q is required", "template")
	}
	return &JoinList{template: template}, nil
}
