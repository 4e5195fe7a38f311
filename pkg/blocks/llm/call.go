package llm

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// Call is a stand-in for an LLM provider invocation: it takes a bound
// prompt and a configured system message and returns a response. No
// concrete provider SDK is wired up here — this exercises the calling
// convention and error-classification contract a real one would use.
type Call struct {
	system string
	model  string
}

func (n *Call) TypeName() string { return "LLMCall" }
func (n *Call) IsInput() bool    { return false }
func (n *Call) IsOutput() bool   { return false }

// Invoke rejects an empty prompt as a RequestError and otherwise
// produces a deterministic stand-in completion.
func (n *Call) Invoke(_ block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	prompt, _ := bindings["prompt"].(string)
	if strings.TrimSpace(prompt) == "" {
		return nil, &RequestError{Reason: "prompt must not be empty"}
	}
	return fmt.Sprintf("[%s] %s\n\n%s", n.model, n.system, prompt), nil
}

// Register adds the LLMCall descriptor to reg.
func Register(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "LLMCall",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&Call{}),
		Slots: []registry.Param{
			{Name: "system", Type: types.TypeString, Default: "", HasDefault: true},
			{Name: "model", Type: types.TypeString, Default: "stand-in", HasDefault: true},
		},
		Inports: []registry.Param{
			{Name: "prompt", Type: types.TypeString},
		},
		Outport:    types.TypeString,
		HasOutport: true,
		New:        newCall,
	})
}

func newCall(slots map[string]interface{}) (interface{}, error) {
	system, _ := slots["system"].(string)
	model, _ := slots["model"].(string)
	if model == "" {
		model = "stand-in"
	}
	return &Call{system: system, model: model}, nil
}
