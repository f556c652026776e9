package tpool

import "container/heap"

const initialPrioCapacity = 64

// PriorityQueue selects the highest-priority pending task first.
//
// Tasks of equal priority come out in heap order; no tie-break is
// defined. Aging and starvation control are the caller's business: a
// task's priority is read once, at selection time.
type PriorityQueue[T PriorityTask] struct {
	h prioHeap[T]
}

func NewPriorityQueue[T PriorityTask]() *PriorityQueue[T] {
	return &PriorityQueue[T]{h: make(prioHeap[T], 0, initialPrioCapacity)}
}

// Len returns the number of pending tasks.
func (q *PriorityQueue[T]) Len() int { return q.h.Len() }

// Emplace inserts a task.
func (q *PriorityQueue[T]) Emplace(task T) { heap.Push(&q.h, task) }

// Front returns the highest-priority task.
func (q *PriorityQueue[T]) Front() *T { return &q.h[0] }

// Pop removes the highest-priority task.
func (q *PriorityQueue[T]) Pop() {
	if q.h.Len() == 0 {
		return
	}
	heap.Pop(&q.h)
}

// Empty reports whether no tasks are pending.
func (q *PriorityQueue[T]) Empty() bool { return q.h.Len() == 0 }

// Clear discards every pending task.
func (q *PriorityQueue[T]) Clear() {
	var zero T
	for i := range q.h {
		q.h[i] = zero
	}
	q.h = q.h[:0]
}

// prioHeap — max-heap by Priority().
type prioHeap[T PriorityTask] []T

func (h prioHeap[T]) Len() int           { return len(h) }
func (h prioHeap[T]) Less(i, j int) bool { return h[i].Priority() > h[j].Priority() }
func (h prioHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *prioHeap[T]) Push(x any) { *h = append(*h, x.(T)) }

func (h *prioHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	var zero T
	old[n-1] = zero
	*h = old[:n-1]
	return it
}
