package graph

import (
	"fmt"
	"sort"

	"github.com/linguflow/linguflow/pkg/block"
)

// Edge is a directed connection from Source to Sink, optionally scoped to
// one declared inport of the sink and filtered by Case.
//
// Port nil marks a guard edge: the scheduler never binds its value to an
// inport, but a null source value keeps the sink from running. Case nil
// means the edge is
// unconditional; otherwise it fires only when the source's value equals
// Case.
type Edge struct {
	Source string
	Sink   string
	Port   *string
	Case   interface{}
}

// Graph is the immutable (Nodes, Edges) pair built by the node
// constructor from a DAGSpec.
type Graph struct {
	nodes map[string]block.Instance
	order []string // construction order, for deterministic iteration
	edges []Edge
}

// New builds a Graph from already-constructed node instances and edges.
// order fixes iteration order for deterministic error messages and
// terminal-node reporting; nodes not present in order are appended in map
// iteration order (non-deterministic) as a defensive fallback.
func New(nodes map[string]block.Instance, order []string, edges []Edge) *Graph {
	g := &Graph{nodes: nodes, edges: edges}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if _, ok := nodes[id]; ok && !seen[id] {
			g.order = append(g.order, id)
			seen[id] = true
		}
	}
	if len(g.order) != len(nodes) {
		for id := range nodes {
			if !seen[id] {
				g.order = append(g.order, id)
			}
		}
	}
	return g
}

// NodeIDs returns every node id in construction order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// GetNode returns the instance registered under id, or nil.
func (g *Graph) GetNode(id string) block.Instance {
	return g.nodes[id]
}

// Edges returns every edge in the graph.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// InputEdges returns every edge whose Sink is id.
func (g *Graph) InputEdges(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Sink == id {
			out = append(out, e)
		}
	}
	return out
}

// OutputEdges returns every edge whose Source is id.
func (g *Graph) OutputEdges(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// TerminalNodes returns every node id with no outgoing edge, sorted for
// determinism.
func (g *Graph) TerminalNodes() []string {
	terminal := make(map[string]bool, len(g.order))
	for _, id := range g.order {
		terminal[id] = true
	}
	for _, e := range g.edges {
		terminal[e.Source] = false
	}
	var out []string
	for id, ok := range terminal {
		if ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// InputNodes returns every node id whose Instance reports IsInput, sorted
// for determinism.
func (g *Graph) InputNodes() []string {
	var out []string
	for _, id := range g.order {
		if n := g.nodes[id]; n != nil && n.IsInput() {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// OutputNodes returns every node id whose Instance reports IsOutput,
// sorted for determinism.
func (g *Graph) OutputNodes() []string {
	var out []string
	for _, id := range g.order {
		if n := g.nodes[id]; n != nil && n.IsOutput() {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DetectCycle reports whether the graph is cyclic. A nil return means the
// graph is acyclic.
//
// Implemented with Kahn's algorithm: compute in-degree per node, repeatedly
// dequeue zero-in-degree nodes and decrement their neighbors' in-degree.
// If fewer nodes are dequeued than exist in the graph, the remainder form
// at least one cycle.
func (g *Graph) DetectCycle() error {
	numNodes := len(g.order)
	if numNodes == 0 {
		return nil
	}

	inDegree := make(map[string]int, numNodes)
	adjacency := make(map[string][]string, numNodes)
	for _, id := range g.order {
		inDegree[id] = 0
	}
	for _, e := range g.edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Sink)
		inDegree[e.Sink]++
	}

	queue := make([]string, 0, numNodes)
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visited++
		for _, neighbor := range adjacency[current] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if visited != numNodes {
		return fmt.Errorf("graph contains a cycle")
	}
	return nil
}
