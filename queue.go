package tpool

import "errors"

var (
	// ErrNoThread is returned by RemoveThread and Clear when the pool
	// has no workers left.
	ErrNoThread = errors.New("tpool: attempt to remove non-existing thread")

	// ErrNoThreadToResume is returned by Resume on a pool with no workers.
	ErrNoThreadToResume = errors.New("tpool: there is no thread to resume")
)

// Queue stores pending tasks and decides their order. The pool calls
// every method with the queue mutex held; implementations need not be
// thread-safe.
//
// Front returns a pointer so the pool can move the task out before Pop
// discards the slot. Front and Pop are only called on a non-empty
// queue.
//
// The interface is intentionally small so that ordering strategies
// (FIFO, priority, anything else) can be swapped without touching the
// pool logic.
type Queue[T Task] interface {
	// Emplace appends a task.
	Emplace(task T)

	// Front returns the task Pop would remove.
	Front() *T

	// Pop removes the front task.
	Pop()

	// Empty reports whether no tasks are pending.
	Empty() bool

	// Clear discards every pending task.
	Clear()
}
