package construct

import (
	"fmt"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/graph"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// Build constructs a graph.Graph from dag, resolving every node's
// registered name through resolver and recursively materializing nested
// slot values.
func Build(dag types.DAGSpec, resolver *registry.Resolver) (*graph.Graph, error) {
	nodes := make(map[string]block.Instance, len(dag.Nodes))
	order := make([]string, 0, len(dag.Nodes))

	for _, spec := range dag.Nodes {
		raw, err := constructNode(spec.Name, spec.Slots, resolver)
		if err != nil {
			if nce, ok := err.(*NodeConstructError); ok {
				nce.NodeID = spec.ID
				return nil, nce
			}
			return nil, err
		}
		inst, ok := raw.(block.Instance)
		if !ok {
			nce := constructFailed(spec.Name, fmt.Errorf("%q is a pattern, not a block, and cannot be a DAG node", spec.Name))
			nce.NodeID = spec.ID
			return nil, nce
		}
		nodes[spec.ID] = inst
		order = append(order, spec.ID)
	}

	edges := make([]graph.Edge, 0, len(dag.Edges))
	for _, e := range dag.Edges {
		edges = append(edges, graph.Edge{
			Source: e.SrcBlock,
			Sink:   e.DstBlock,
			Port:   e.DstPort,
			Case:   e.Case,
		})
	}

	return graph.New(nodes, order, edges), nil
}

// constructNode resolves name through resolver, recursively resolves
// slots, and invokes the registered constructor. Returns a
// *NodeConstructError on any failure.
func constructNode(name string, slots map[string]interface{}, resolver *registry.Resolver) (interface{}, error) {
	if resolver.Lookup(name, "impl") == nil {
		return nil, nameNotFound(name)
	}
	if abstract, _ := resolver.Lookup(name, "abstract").(bool); abstract {
		return nil, abstractType(name)
	}

	resolved := make(map[string]interface{}, len(slots))
	for key, raw := range slots {
		v, err := resolveSlotValue(raw, resolver)
		if err != nil {
			return nil, err
		}
		resolved[key] = v
	}

	raw, err := resolver.Construct(name, resolved)
	if err != nil {
		return nil, constructFailed(name, err)
	}
	return raw, nil
}

// resolveSlotValue recurses over slot values: an object (map with a
// "name" key) is a nested pattern spec and is constructed; an array is
// mapped element-wise; everything else passes through unchanged.
func resolveSlotValue(v interface{}, resolver *registry.Resolver) (interface{}, error) {
	switch tv := v.(type) {
	case map[string]interface{}:
		name, _ := tv["name"].(string)
		if name == "" {
			return nil, &NodeConstructError{Reason: "nested slot object missing \"name\""}
		}
		nested, _ := tv["slots"].(map[string]interface{})
		return constructNode(name, nested, resolver)
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, elem := range tv {
			resolved, err := resolveSlotValue(elem, resolver)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}
