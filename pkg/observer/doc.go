// Package observer delivers run and node lifecycle events to registered
// observers.
//
// # Observer Interface
//
//	type Observer interface {
//	    OnEvent(ctx context.Context, event Event)
//	}
//
// An Event carries its Type, Status and Timestamp, the InteractionID and
// VersionID of the run, and, for node events, NodeID, NodeType,
// StartTime, ElapsedTime, Result or Error, plus optional Metadata.
//
// # Events
//
// Event types are run_start, run_end, node_start, node_end, node_success
// and node_failure; statuses are started, success, failure and completed.
// The scheduler emits run_start and run_end around a run, and node_start
// followed by node_success or node_failure around each node it evaluates.
//
// # Built-in Observers
//
//   - NoOpObserver ignores every event.
//   - ConsoleObserver writes each event through a Logger
//     (NewConsoleObserver, or NewConsoleObserverWithLogger to supply one).
//
// Logger is the small interface ConsoleObserver writes to
// (Debug/Info/Warn/Error with a message and a field map); NoOpLogger
// discards everything and DefaultLogger writes with the standard log
// package. telemetry.RunObserver is another Observer implementation.
//
// # Manager
//
// A Manager (NewManager, NewManagerWithObservers) holds the registered
// observers; Register ignores nil, HasObservers and Count report what is
// registered. Notify calls each observer's OnEvent in its own goroutine,
// so observers may run concurrently, in no fixed order, and possibly after
// Notify has returned; implementations must be safe for concurrent use.
// A panic in an observer is recovered without being reported, and the
// other observers still receive the event.
package observer
