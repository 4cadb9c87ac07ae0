package promise

import "errors"

// Then returns a composite [Task] that, once t resolves, invokes
// onResolve with the value to obtain the next Task, and completes with
// that Task's outcome. If onResolve returns nil, the composite
// resolves with the zero value of U. If t fails, the composite fails
// with the same error and onResolve is never invoked.
//
// onResolve runs on a later turn of the deferred queue, never inline
// with the completion of t.
//
// Cancelling the composite forwards to whichever of t and the
// continuation Task is live at that moment; the composite itself
// finishes with [Canceled].
//
// Then consumes the single completion listener of t.
func Then[T, U any](t *Task[T], onResolve func(T) *Task[U]) *Task[U] {
	if onResolve == nil {
		panic("Then(nil): undefined behavior")
	}
	return sequence(t, func(sq *sequencer[U], err error, value T) {
		if err != nil {
			sq.reject(err)
			return
		}
		sq.next(func() *Task[U] { return onResolve(value) })
	})
}

// Catch returns a composite [Task] that, once t fails, invokes
// onReject with the error to obtain the next Task, and completes with
// that Task's outcome. If onReject returns nil, the composite resolves
// with the zero value of T. If t resolves, the composite resolves with
// the same value and onReject is never invoked.
//
// A failure with [Canceled] is not handed to onReject: cancellation
// propagates through the chain untouched.
//
// Deferral, cancellation forwarding and listener consumption are as
// for [Then].
func Catch[T any](t *Task[T], onReject func(error) *Task[T]) *Task[T] {
	if onReject == nil {
		panic("Catch(nil): undefined behavior")
	}
	return sequence(t, func(sq *sequencer[T], err error, value T) {
		if err == nil {
			sq.resolve(value)
			return
		}
		sq.next(func() *Task[T] { return onReject(err) })
	})
}

// ThenCatch returns a composite [Task] that routes the outcome of t to
// one of the two continuation factories: onResolve on success,
// onReject on failure. Both must be non-nil; use [Then] or [Catch]
// when only one side is handled.
//
// A failure with [Canceled] is not handed to onReject: cancellation
// propagates through the chain untouched.
//
// Deferral, cancellation forwarding and listener consumption are as
// for [Then].
func ThenCatch[T, U any](t *Task[T], onResolve func(T) *Task[U], onReject func(error) *Task[U]) *Task[U] {
	if onResolve == nil {
		panic("ThenCatch(nil, _): undefined behavior")
	}
	if onReject == nil {
		panic("ThenCatch(_, nil): undefined behavior")
	}
	return sequence(t, func(sq *sequencer[U], err error, value T) {
		if err != nil {
			sq.next(func() *Task[U] { return onReject(err) })
			return
		}
		sq.next(func() *Task[U] { return onResolve(value) })
	})
}

type canceler interface {
	Cancel()
}

// A sequencer backs one composite Task. It owns the resolve/reject
// capabilities of the composite and the handle to whichever sub-task
// is currently live. At any instant at most one sub-task is live:
// first the chained-on Task, then the Task produced by a continuation
// factory. Cancellation of the composite walks the current handle.
//
// All fields are written only on the cooperative thread: current and
// canceled by the abort capability and the completion handlers, which
// never run concurrently.
type sequencer[U any] struct {
	sched    Scheduler
	resolve  func(U)
	reject   func(error)
	current  canceler
	canceled bool
}

// sequence builds the composite Task for t and hands the outcome of t
// to step on a later turn of the deferred queue. step runs only when
// neither the composite nor t was cancelled in the meantime.
func sequence[T, U any](t *Task[T], step func(sq *sequencer[U], err error, value T)) *Task[U] {
	sq := &sequencer[U]{sched: t.sched}

	composite := Start(t.sched, func(resolve func(U), reject func(error)) func() {
		sq.resolve = resolve
		sq.reject = reject
		return sq.abort
	})

	sq.current = t

	t.await(func(err error, value T) {
		sq.current = nil

		// Never run the continuation inline, even when t finished
		// synchronously: one deferred turn always separates the
		// completion of t from the creation of the next sub-task.
		sq.sched.Schedule(func() {
			if sq.canceled || errors.Is(err, Canceled) {
				sq.reject(Canceled)
				return
			}
			step(sq, err, value)
		})
	})

	return composite
}

func (sq *sequencer[U]) abort() {
	sq.canceled = true

	if c := sq.current; c != nil {
		c.Cancel()
	}
}

// next invokes a continuation factory and ties the composite to the
// Task it produces. A panic in the factory rejects the composite; a
// nil Task resolves it with the zero value of U.
func (sq *sequencer[U]) next(factory func() *Task[U]) {
	var next *Task[U]

	if err := catch(func() { next = factory() }); err != nil {
		sq.reject(err)
		return
	}

	if next == nil {
		var zero U
		sq.resolve(zero)
		return
	}

	sq.current = next

	next.await(func(err error, value U) {
		sq.current = nil

		if err != nil {
			sq.reject(err)
			return
		}
		sq.resolve(value)
	})
}
