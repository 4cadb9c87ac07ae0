package promise

import "sync"

// A Scheduler runs callbacks on later turns of a single-threaded
// cooperative loop.
//
// Schedule never runs f inline; f runs on a later turn, after the call
// that scheduled it has returned. Callbacks run in the order they were
// scheduled (FIFO).
//
// Every constructor in this package takes a Scheduler; all Tasks in
// one chain share the Scheduler of the first.
type Scheduler interface {
	Schedule(f func())
}

// A Queue is a FIFO [Scheduler].
//
// Scheduled callbacks are added into an internal queue. The Run method
// then pops and runs each of them until the queue is emptied.
// It is done in a single-threaded manner.
// If one callback blocks, no other callbacks can run.
// The best practice is not to block.
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun
// function to calling the Run method automatically whenever a callback
// is scheduled. The Queue never calls the autorun function twice at
// the same time.
type Queue struct {
	mu      sync.Mutex
	q       fifo[func()]
	running bool
	autorun func()
}

// Autorun sets up an autorun function to calling the Run method
// automatically whenever a callback is scheduled.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Schedule method may block too.
// The best practice is not to block.
func (q *Queue) Autorun(f func()) {
	q.autorun = f
}

// Run pops and runs every callback in the queue until the queue is
// emptied.
//
// Run must not be called twice at the same time.
func (q *Queue) Run() {
	q.mu.Lock()
	q.running = true

	for !q.q.Empty() {
		f := q.q.Pop()
		q.mu.Unlock()
		f()
		q.mu.Lock()
	}

	q.running = false
	q.mu.Unlock()
}

// Schedule adds f into the queue. To run it, either call the Run
// method, or call the Autorun method to set up an autorun function
// beforehand.
//
// Schedule is safe for concurrent use.
func (q *Queue) Schedule(f func()) {
	var autorun func()

	q.mu.Lock()

	if !q.running && q.autorun != nil {
		q.running = true
		autorun = q.autorun
	}

	q.q.Push(f)
	q.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}
