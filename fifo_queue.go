package tpool

const initialFifoCapacity = 64

// FIFOQueue is a growable ring-buffer task queue.
//
// Tasks are selected strictly in the order they were emplaced.
// No priorities, no aging, no reordering.
type FIFOQueue[T Task] struct {
	buf        []T // circular buffer
	head, tail int // read/write indices
	size       int
}

func NewFIFOQueue[T Task]() *FIFOQueue[T] {
	return &FIFOQueue[T]{buf: make([]T, initialFifoCapacity)}
}

// Len returns the number of pending tasks.
func (q *FIFOQueue[T]) Len() int { return q.size }

// Emplace inserts a task at the tail, growing the buffer when full.
func (q *FIFOQueue[T]) Emplace(task T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[q.tail] = task
	q.tail++
	if q.tail == len(q.buf) {
		q.tail = 0
	}
	q.size++
}

// Front returns the oldest task.
func (q *FIFOQueue[T]) Front() *T { return &q.buf[q.head] }

// Pop removes the oldest task.
func (q *FIFOQueue[T]) Pop() {
	if q.size == 0 {
		return
	}
	var zero T
	q.buf[q.head] = zero // drop the reference behind the moved-out task
	q.head++
	if q.head == len(q.buf) {
		q.head = 0
	}
	q.size--
}

// Empty reports whether no tasks are pending.
func (q *FIFOQueue[T]) Empty() bool { return q.size == 0 }

// Clear discards every pending task.
func (q *FIFOQueue[T]) Clear() {
	var zero T
	for i := range q.buf {
		q.buf[i] = zero
	}
	q.head, q.tail, q.size = 0, 0, 0
}

func (q *FIFOQueue[T]) grow() {
	next := make([]T, 2*len(q.buf))
	n := copy(next, q.buf[q.head:])
	copy(next[n:], q.buf[:q.tail])
	q.buf = next
	q.head = 0
	q.tail = q.size
}
