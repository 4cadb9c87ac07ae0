package promise

import "errors"

const (
	flagFinished = 1 << iota
	flagListened
)

// Canceled is the reserved error a [Task] finishes with when it is
// cancelled. It is recognized by equality; user code must not reject
// with it to mean anything other than cancellation.
var Canceled = errors.New("promise: canceled")

// A Task is a handle to a single asynchronous computation that
// completes at most once, either with a value of type T or with
// an error.
//
// A Task begins running inside the constructor that creates it.
// A running Task can be cancelled with the Cancel method; a Task whose
// outcome is already fixed ignores cancellation.
//
// A Task accepts a single completion listener. [Then], [Catch],
// [ThenCatch] and [Task.Finally] each consume it; attaching a second
// listener to the same Task panics, since it indicates a logic bug in
// the caller rather than a runtime condition.
type Task[T any] struct {
	sched    Scheduler
	flag     uint8
	err      error
	value    T
	abort    func()
	listener func(err error, value T)
}

// Start creates a [Task] by invoking starter synchronously.
//
// The starter reports completion by calling resolve or reject; only
// the first call counts, later calls are ignored. The starter may
// return a non-nil abort function, which is called at most once, if
// the Task is cancelled while still running.
//
// A panic inside starter is caught and rejects the Task with the panic
// value (see [PanicError]).
func Start[T any](s Scheduler, starter func(resolve func(T), reject func(error)) (abort func())) *Task[T] {
	if s == nil {
		panic("Start(nil Scheduler): undefined behavior")
	}
	if starter == nil {
		panic("Start(nil starter): undefined behavior")
	}

	t := &Task[T]{sched: s}

	var abort func()

	if err := catch(func() { abort = starter(t.resolve, t.reject) }); err != nil {
		t.reject(err)
		return t
	}

	if t.flag&flagFinished == 0 {
		t.abort = abort
	}

	return t
}

// Resolve creates a [Task] that has already completed with v.
// The Task has no abort function; cancelling it is a no-op.
func Resolve[T any](s Scheduler, v T) *Task[T] {
	return Start(s, func(resolve func(T), _ func(error)) func() {
		resolve(v)
		return nil
	})
}

// Reject creates a [Task] that has already failed with err.
func Reject[T any](s Scheduler, err error) *Task[T] {
	return Start(s, func(_ func(T), reject func(error)) func() {
		reject(err)
		return nil
	})
}

func (t *Task[T]) resolve(v T) {
	t.finish(nil, v)
}

func (t *Task[T]) reject(err error) {
	var zero T
	t.finish(err, zero)
}

// finish fixes the outcome of t. The first call wins; later calls are
// no-ops. The listener, if any, is invoked inline with the winning
// completion.
func (t *Task[T]) finish(err error, value T) {
	if t.flag&flagFinished != 0 {
		return
	}

	t.flag |= flagFinished
	t.err = err
	t.value = value
	t.abort = nil

	if f := t.listener; f != nil {
		t.listener = nil
		f(err, value)
	}
}

// Cancel cancels t.
//
// If t is still running, its outcome is fixed to [Canceled] and then
// the abort function returned by the starter, if any, is called so the
// underlying work can release resources. The abort is advisory; the
// work may ignore it and complete anyway, to no effect.
//
// Cancel is a no-op if the outcome of t is already fixed.
func (t *Task[T]) Cancel() {
	if t.flag&flagFinished != 0 {
		return
	}

	abort := t.abort

	var zero T
	t.finish(Canceled, zero)

	if abort != nil {
		abort()
	}
}

// await registers the one completion listener of t. If t has already
// finished, f is invoked inline with the stored outcome; deferral, when
// wanted, is the caller's business.
func (t *Task[T]) await(f func(err error, value T)) {
	if t.flag&flagListened != 0 {
		panic("promise(Task): multiple listeners on a single task")
	}

	t.flag |= flagListened

	if t.flag&flagFinished != 0 {
		f(t.err, t.value)
		return
	}

	t.listener = f
}

// Finally arranges for cleanup to run, via a deferred turn, once t
// finishes, regardless of success, failure or cancellation. The
// outcome is not passed to cleanup. Finally returns t itself.
//
// The deferral applies even when t has already finished at the time
// Finally is called: cleanup never runs inline.
//
// Finally consumes the single completion listener of t.
func (t *Task[T]) Finally(cleanup func()) *Task[T] {
	if cleanup == nil {
		panic("Finally(nil): undefined behavior")
	}

	sched := t.sched

	t.await(func(error, T) {
		sched.Schedule(cleanup)
	})

	return t
}
