package promise

// A fifo is a first-in-first-out container. Elements are pushed onto
// the tail slice and popped from the head slice; when the head runs
// out, the tail becomes the new head.
type fifo[E any] struct {
	head, tail []E
}

func (q *fifo[E]) Empty() bool {
	return len(q.head) == 0 && len(q.tail) == 0
}

func (q *fifo[E]) Push(v E) {
	q.tail = append(q.tail, v)
}

func (q *fifo[E]) Pop() (v E) {
	if len(q.head) == 0 {
		q.head, q.tail = q.tail, nil
	}

	// Swap a zero value in so the popped slot drops its reference.
	q.head[0], v = v, q.head[0]
	q.head = q.head[1:]

	return v
}
