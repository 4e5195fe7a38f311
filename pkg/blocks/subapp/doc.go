// Package subapp provides the three sub-application invocation blocks —
// SubAppText, SubAppList, and SubAppDict, one per accepted input shape —
// that invoke another application by id through pkg/invoker, memoize
// identical invocations for the calling run's lifetime, and block until
// the sub-interaction settles or a configurable timeout elapses.
package subapp
