// Package graph holds the in-memory DAG: node id to block instance, and
// directed edges carrying an optional port and case label. It provides
// cycle detection and edge-lookup helpers consumed by the validator and
// scheduler.
//
// Cycle detection uses a Kahn's-algorithm topological sort, generalized
// from a fixed source/target edge pair to the (source, sink, port, case)
// edges this graph carries.
package graph
