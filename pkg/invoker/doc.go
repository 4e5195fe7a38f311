// Package invoker is the asynchronous entry point for running a Version:
// Invoke constructs and validates the Version's graph, persists a new
// Interaction row, and returns its id immediately while a background
// goroutine drives the scheduler and records progress and the final
// result. Poll is a thin read of that same Interaction row.
//
// A background goroutine bounds a single run with a timeout the same way
// a synchronous call would; here that pattern is what makes the call
// itself asynchronous, since a caller polls an Interaction rather than
// blocking on the run.
package invoker
