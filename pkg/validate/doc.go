// Package validate runs the ordered rule pipeline that a constructed
// graph.Graph must pass before a scheduler may evaluate it: every edge
// endpoint exists, the graph is acyclic, every required port is filled,
// exactly one input and one output node are present, port types are
// assignable, and non-builtin outport types carry a string-conversion
// capability.
//
// Each rule is a pure function of (graph, resolver) raising a subtype of
// GraphCheckError; Run executes them in a single pass over a pluggable
// rule slice and stops at the first failure.
package validate
