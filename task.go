package tpool

// Task is the unit of work a pool executes. The pool treats tasks
// opaquely: it moves one out of the queue, invokes it once, and never
// looks at it again.
type Task interface {
	Invoke()
}

// Func adapts a plain function to Task.
type Func func()

func (f Func) Invoke() { f() }

// PriorityTask is a task carrying a scheduling priority, consumed by
// PriorityQueue. Higher values are selected first.
type PriorityTask interface {
	Task
	Priority() int
}

// PriorityFunc pairs a function with a priority.
type PriorityFunc struct {
	Prio int
	Fn   func()
}

func (p PriorityFunc) Invoke()       { p.Fn() }
func (p PriorityFunc) Priority() int { return p.Prio }
