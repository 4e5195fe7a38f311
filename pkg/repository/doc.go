// Package repository stores Applications, their Version tree, and the
// Interaction records produced by running a Version.
//
// The only implementation provided is an in-memory store. Persistence is
// deliberately exposed as a narrow interface rather than owned end to
// end, so a real backing store can implement Repository without any
// caller needing to change.
package repository
