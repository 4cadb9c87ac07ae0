package promise_test

import (
	"sync"
	"testing"

	"github.com/b97tsk/promise"
	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	t.Run("RunsInFIFOOrder", func(t *testing.T) {
		var q promise.Queue

		var order []int

		q.Schedule(func() { order = append(order, 1) })
		q.Schedule(func() {
			order = append(order, 2)
			// Scheduled while running: runs after everything already
			// in the queue.
			q.Schedule(func() { order = append(order, 4) })
		})
		q.Schedule(func() { order = append(order, 3) })

		assert.Empty(t, order)

		q.Run()

		assert.Equal(t, []int{1, 2, 3, 4}, order)
	})

	t.Run("AutorunDrainsWithoutReentry", func(t *testing.T) {
		var q promise.Queue

		runs := 0
		q.Autorun(func() {
			runs++
			q.Run()
		})

		ran := 0

		q.Schedule(func() {
			ran++
			q.Schedule(func() { ran++ })
		})

		assert.Equal(t, 2, ran)
		assert.Equal(t, 1, runs)
	})

	t.Run("ScheduleFromGoroutines", func(t *testing.T) {
		var q promise.Queue

		var wg sync.WaitGroup

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				q.Schedule(func() {})
			}()
		}

		wg.Wait()

		ran := 0
		q.Schedule(func() { ran++ })
		q.Run()

		assert.Equal(t, 1, ran)
	})
}
