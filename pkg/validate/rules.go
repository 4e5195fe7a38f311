package validate

import (
	"fmt"
	"reflect"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/graph"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// Rule is one pure check against a constructed graph.
type Rule func(g *graph.Graph, resolver *registry.Resolver) error

// Default is the canonical rule set, applied in this order.
var Default = []Rule{
	EndpointExist,
	GraphIsDAG,
	RequiredInPortIsFit,
	ExactlyOneInputAndOutput,
	PortTypeMatch,
	TypeHasStrMethod,
}

// EndpointExist checks that every edge's source and sink are declared
// nodes, and that a named port is either a declared inport of the sink or
// absorbed by a variadic-keyword parameter.
func EndpointExist(g *graph.Graph, resolver *registry.Resolver) error {
	for _, e := range g.Edges() {
		src := g.GetNode(e.Source)
		if src == nil {
			return newEndpointMissingError(fmt.Sprintf("edge source %q is not a declared node", e.Source))
		}
		sink := g.GetNode(e.Sink)
		if sink == nil {
			return newEndpointMissingError(fmt.Sprintf("edge sink %q is not a declared node", e.Sink))
		}
		if e.Port == nil {
			continue
		}
		if portDeclared(resolver, sink.TypeName(), *e.Port) {
			continue
		}
		if resolver.HasVariadicKeyword(sink.TypeName()) {
			continue
		}
		return newEndpointMissingError(fmt.Sprintf(
			"edge into %q targets undeclared port %q and %q has no variadic-keyword parameter",
			e.Sink, *e.Port, sink.TypeName()))
	}
	return nil
}

// GraphIsDAG checks that the graph is acyclic.
func GraphIsDAG(g *graph.Graph, _ *registry.Resolver) error {
	if err := g.DetectCycle(); err != nil {
		return newCyclicGraphError(err.Error())
	}
	return nil
}

// RequiredInPortIsFit checks that every invocation parameter without a
// default, and that is not the variadic-keyword parameter, has at least
// one incoming edge targeting it by name.
func RequiredInPortIsFit(g *graph.Graph, resolver *registry.Resolver) error {
	for _, id := range g.NodeIDs() {
		node := g.GetNode(id)
		for _, p := range resolver.Inports(node.TypeName()) {
			if p.HasDefault || p.Kind == registry.KindVariadicKeyword {
				continue
			}
			if !hasNamedIncomingEdge(g, id, p.Name) {
				return newRequiredPortUnfilledError(fmt.Sprintf(
					"node %q (%s): required port %q has no incoming edge", id, node.TypeName(), p.Name))
			}
		}
	}
	return nil
}

// ExactlyOneInputAndOutput checks that the node set contains exactly one
// input block and exactly one output block.
func ExactlyOneInputAndOutput(g *graph.Graph, _ *registry.Resolver) error {
	if n := len(g.InputNodes()); n != 1 {
		return newInputOutputCountError(fmt.Sprintf("graph must have exactly one input node, found %d", n))
	}
	if n := len(g.OutputNodes()); n != 1 {
		return newInputOutputCountError(fmt.Sprintf("graph must have exactly one output node, found %d", n))
	}
	return nil
}

// PortTypeMatch checks that every named edge's source return type is
// assignable to the sink port's declared type: equal, Any on either side,
// or a registered subtype relationship via resolver.Candidates.
func PortTypeMatch(g *graph.Graph, resolver *registry.Resolver) error {
	for _, e := range g.Edges() {
		if e.Port == nil {
			continue
		}
		sink := g.GetNode(e.Sink)
		port, ok := findInport(resolver, sink.TypeName(), *e.Port)
		if !ok {
			continue // absorbed by variadic-keyword; no declared type to check
		}
		src := g.GetNode(e.Source)
		srcType, ok := resolver.Outport(src.TypeName())
		if !ok {
			continue
		}
		if !assignable(resolver, srcType, port.Type) {
			return newPortTypeMismatchError(fmt.Sprintf(
				"edge %s -> %s.%s: %s is not assignable to %s", e.Source, e.Sink, *e.Port, srcType, port.Type))
		}
	}
	return nil
}

// TypeHasStrMethod checks that every edge's source return type, when not
// a registry builtin, provides a string-conversion capability.
func TypeHasStrMethod(g *graph.Graph, resolver *registry.Resolver) error {
	for _, e := range g.Edges() {
		src := g.GetNode(e.Source)
		srcType, ok := resolver.Outport(src.TypeName())
		if !ok || types.IsBuiltin(srcType) {
			continue
		}
		impl, _ := resolver.Lookup(string(srcType), "impl").(reflect.Type)
		if impl == nil || !implementsStringer(impl) {
			return newMissingStrMethodError(fmt.Sprintf(
				"outport type %q reaching edge %s -> %s does not implement LinguFlowString", srcType, e.Source, e.Sink))
		}
	}
	return nil
}

var stringerType = reflect.TypeOf((*block.Stringer)(nil)).Elem()

func implementsStringer(impl reflect.Type) bool {
	return impl.Implements(stringerType) || reflect.PointerTo(impl).Implements(stringerType)
}

func portDeclared(resolver *registry.Resolver, typeName, port string) bool {
	_, ok := findInport(resolver, typeName, port)
	return ok
}

func findInport(resolver *registry.Resolver, typeName, port string) (registry.Param, bool) {
	for _, p := range resolver.Inports(typeName) {
		if p.Name == port {
			return p, true
		}
	}
	return registry.Param{}, false
}

func hasNamedIncomingEdge(g *graph.Graph, sink, port string) bool {
	for _, e := range g.InputEdges(sink) {
		if e.Port != nil && *e.Port == port {
			return true
		}
	}
	return false
}

// assignable reports whether a value of type src may flow into a port
// declared dst: equality, Any on either side, or src registered as a
// candidate subtype of dst.
func assignable(resolver *registry.Resolver, src, dst types.TypeName) bool {
	if dst == types.Any || src == types.Any || src == dst {
		return true
	}
	for _, c := range resolver.Candidates(string(dst)) {
		if c == string(src) {
			return true
		}
	}
	return false
}
