// Package config centralizes the tunable limits shared across the
// scheduler, invoker, and repository: execution timeouts, node-execution
// caps, version-tree walk depth, and sub-application invocation timing.
//
// # Basic usage
//
//	cfg := config.Default()
//	sched := scheduler.New(resolver, cfg, logger, nil)
//
// Development, Production, and Testing return variants tuned for their
// named environment; Default is what every constructor falls back to when
// given a nil *Config.
package config
