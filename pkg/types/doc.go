// Package types provides shared type definitions for LinguFlow.
// All core data structures used across packages are defined here to avoid
// circular dependencies between the registry, graph, validate, scheduler,
// and invoker packages.
package types
