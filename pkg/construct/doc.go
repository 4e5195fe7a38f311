// Package construct builds a graph.Graph from a types.DAGSpec by
// resolving each node's registered name through a registry.Resolver and
// recursively materializing its slot values.
//
// The recursive walk over slot values (object slots become nested
// pattern instances, array slots map element-wise, everything else
// passes through) replaces a fixed node-type-keyed switch with
// resolver-driven dispatch by registered name.
package construct
