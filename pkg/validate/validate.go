package validate

import (
	"github.com/linguflow/linguflow/pkg/graph"
	"github.com/linguflow/linguflow/pkg/registry"
)

// Run executes rules against g in order, stopping and returning the first
// failure. A nil rules slice runs Default.
func Run(g *graph.Graph, resolver *registry.Resolver, rules []Rule) error {
	if rules == nil {
		rules = Default
	}
	for _, rule := range rules {
		if err := rule(g, resolver); err != nil {
			return err
		}
	}
	return nil
}
