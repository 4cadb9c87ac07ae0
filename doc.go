// Package promise implements one-shot asynchronous tasks for
// single-threaded cooperative code.
//
// A [Task] is a handle to a computation that completes at most once,
// either with a value or with an error. A Task is created with [Start],
// which invokes a starter function synchronously; the starter reports
// completion through the resolve and reject callbacks it is handed, and
// may return an abort function to be called if the Task is cancelled
// while still running.
//
// Tasks compose sequentially. [Then], [Catch] and [ThenCatch] build a
// composite Task out of a first Task and one or two continuation
// factories. Continuations never run inline with the completion that
// triggers them; the composite always forces one turn of the deferred
// queue in between, so chaining code observes the same ordering whether
// the first Task completed synchronously or not. Cancelling a composite
// forwards the cancellation to whichever underlying Task is live at
// that moment.
//
// # Scheduling
//
// Everything in this package runs on a [Scheduler], a deferred-callback
// queue that executes callbacks on later cooperative turns in FIFO
// order. The Scheduler is an explicit collaborator passed to every
// constructor rather than a process-wide facility, which keeps the
// package testable with a manually driven queue. [Queue] is the
// provided implementation; it drains single-threadedly and its
// Schedule method is safe for use from other goroutines.
//
// If one callback blocks, no other callbacks can run.
// The best practice is not to block.
//
// # Cancellation
//
// Cancellation is cooperative and advisory. [Task.Cancel] fixes the
// outcome to the reserved [Canceled] error immediately, then calls the
// starter's abort function, if any, so in-flight work can release
// resources. The underlying work may ignore the abort and complete
// anyway; its completion is discarded because the outcome is already
// fixed.
//
// # Errors
//
// Rejections are ordinary error values. [Canceled] is reserved and is
// recognized by equality. Panics in starter functions and continuation
// factories are caught at the package boundary and converted into
// rejections; they never propagate out of a Task. Only programming
// mistakes panic: registering a second completion listener on a Task,
// or passing a nil continuation factory.
//
// This package deliberately provides no timeout, retry or backoff
// primitives, and no fan-out to multiple listeners per Task. Callers
// build these on top.
package promise
