// Package block defines the runtime contracts that every constructed node
// in a DAG must satisfy.
//
// Rather than a fixed node-type enum dispatched through a type-switch, a
// block here is any value implementing Instance; the registry holds a
// constructor function per registered name and the scheduler treats every
// instance as an opaque callable behind a uniform interface, dispatching
// dynamically over heterogeneous ports instead of switching on a type tag.
package block
