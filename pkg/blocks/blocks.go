package blocks

import (
	"github.com/linguflow/linguflow/pkg/registry"

	"github.com/linguflow/linguflow/pkg/blocks/control"
	"github.com/linguflow/linguflow/pkg/blocks/io"
	"github.com/linguflow/linguflow/pkg/blocks/llm"
	"github.com/linguflow/linguflow/pkg/blocks/pattern"
	"github.com/linguflow/linguflow/pkg/blocks/subapp"
)

// Build registers every built-in block and pattern type into a fresh
// Registry and returns it alongside the subapp.Caller those blocks
// dispatch through. The Caller must be Wired to a Repository, Invoker,
// and Config before a sub-application invocation block is invoked; every
// other returned descriptor is immediately usable.
func Build() (*registry.Registry, *subapp.Caller, error) {
	reg := registry.New()

	registrars := []func(*registry.Registry) error{
		io.Register,
		pattern.Register,
		control.Register,
		llm.Register,
	}
	for _, register := range registrars {
		if err := register(reg); err != nil {
			return nil, nil, err
		}
	}

	caller := subapp.NewCaller()
	if err := subapp.Register(reg, caller); err != nil {
		return nil, nil, err
	}

	return reg, caller, nil
}
