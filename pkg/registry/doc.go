// Package registry implements the catalog of registered block and pattern
// types and the read-only resolver built from it.
//
// Rather than a fixed node-type enum dispatched through a central type
// switch, this package holds an open catalog of descriptors: each
// package under pkg/blocks/... registers its descriptors (name, slots,
// inports, outport, constructor) explicitly against a *Registry from a
// Register(reg *Registry) error function, assembled by one top-level
// call rather than scattered package-level init() registration, so any
// number of names can be declared without touching a central switch
// statement.
//
// Registry is mutable only until the first Resolver is constructed:
// NewResolver freezes it and validates that every referenced type name is
// itself registered or builtin. Resolver is the read-only, memoized query
// facade used by both the Node Constructor and the Validator.
package registry
