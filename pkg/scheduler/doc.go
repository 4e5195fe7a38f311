// Package scheduler evaluates a constructed graph on demand from its
// output node, memoizing each node's value for the lifetime of one run.
//
// Values are pulled, not pushed: evaluating the output node recursively
// pulls whatever upstream values it needs, and a node never runs unless
// something downstream demanded it. Each node evaluation gets a
// structured logger scoped by node id and type, observer notifications
// at start/success/failure, and a counter enforcing the configured
// execution ceiling.
package scheduler
