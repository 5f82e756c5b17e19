// Package supervisor runs the long-lived monitor tasks of the process.
//
// Tasks run concurrently with no shared state. They are expected to run until
// the root context is cancelled. A task that returns early or panics
// cancels every other task and its error is returned to the caller, which exits
// the process. There is no restart at this level.
package supervisor
