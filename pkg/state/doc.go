// Package state implements the per-run context passed to every block
// invocation during one scheduler run: the app/version/interaction/user/
// session identifiers, and a memoization cache keyed by caller-supplied
// strings, used by sub-application invocation blocks to avoid re-
// triggering equivalent calls within the same run.
//
// A Context is built fresh by the invoker for each run and is never
// reused or shared across runs; it is passed explicitly through every
// block.Instance.Invoke call rather than stored in a goroutine-local or
// process-global slot, so that two concurrent runs never observe each
// other's state.
package state
