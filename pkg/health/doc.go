// Package health provides health check and readiness probe functionality
// for linguflowd: liveness/readiness probes, a named-check registry with
// per-check timeout and criticality, HTTP handlers for /health,
// /health/live and /health/ready, and NewLinguFlowChecker, which wires
// pkg/repository's liveness into the checker the server starts with.
package health
