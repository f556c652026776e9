package tpool

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/azargarov/tpool/syncx"
)

// State governs whether workers may dequeue.
type State int

const (
	Paused State = iota
	Executing
)

// action flags set by structural operations to make workers exit.
const (
	finish    uint8 = 1 << iota // one worker should leave its loop
	finishAll                   // every worker seeing finish should leave
)

// Pool runs tasks of type T on a dynamic fleet of workers.
//
// Workers are detached: the pool keeps no handles and tracks liveness
// through its thread counter, so shutdown is proven by waiting for the
// counter to drain rather than by joining handles.
//
// Lock ordering is strict: opMtx before queueMtx, never the reverse.
// Workers take only queueMtx. All counters, the state, the action flags
// and the queue are guarded by queueMtx.
//
// Two condition variables keep wake-ups targeted: queueCV tells workers
// that work (or an exit order) is available, clientCV tells blocked
// clients that a counter or the queue changed.
type Pool[T Task] struct {
	queueMtx *syncx.Mutex // guards queue, counters, state, action
	opMtx    *syncx.Mutex // serializes structural operations; locked strictly before queueMtx

	queueCV  *syncx.Cond // workers wait here for work or exit orders
	clientCV *syncx.Cond // clients wait here on counter predicates

	queue Queue[T]

	threadCount int
	activeCount int
	state       State
	action      uint8

	policy  ExceptionPolicy
	logger  *zap.Logger
	metrics *Metrics
}

// New builds a pool over q and spawns n workers. n == 0 is valid and
// leaves the pool paused; AddThread or Resume bring it to life later.
func New[T Task](n int, q Queue[T], opts Options) (*Pool[T], error) {
	opts.FillDefaults()
	p := &Pool[T]{
		queueMtx: syncx.NewMutex(),
		opMtx:    syncx.NewMutex(),
		queueCV:  syncx.NewCond(),
		clientCV: syncx.NewCond(),
		queue:    q,
		state:    Paused,
		policy:   opts.Policy,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if n > 0 {
		p.state = Executing
	}
	if err := p.AddThread(n, false); err != nil {
		return nil, err
	}
	return p, nil
}

// Policy returns the exception policy the pool was built with.
func (p *Pool[T]) Policy() ExceptionPolicy { return p.policy }

// ThreadCount reports the number of live workers.
func (p *Pool[T]) ThreadCount() int {
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)
	return p.threadCount
}

// ActiveCount reports the number of workers currently running a task.
func (p *Pool[T]) ActiveCount() int {
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)
	return p.activeCount
}

// AddThread spawns count fresh workers and waits until every one of
// them has registered itself in the thread counter. The workers are
// detached immediately. When resumeIfPaused is set, a paused pool
// resumes once the new workers are up.
//
// A spawn failure propagates at once; workers spawned before the
// failure stay and register on their own.
func (p *Pool[T]) AddThread(count int, resumeIfPaused bool) error {
	p.opMtx.Lock()
	defer p.opMtx.Unlock()

	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)

	newCount := p.threadCount + count

	for i := 0; i < count; i++ {
		t, err := syncx.Spawn(p.routine)
		if err != nil {
			return fmt.Errorf("tpool: spawn worker: %w", err)
		}
		_ = t.Detach()
	}

	if err := p.clientCV.WaitPred(lk, func() bool { return p.threadCount == newCount }); err != nil {
		return err
	}

	if resumeIfPaused && p.state == Paused && p.threadCount > 0 {
		p.state = Executing
		p.queueCV.NotifyAll()
	}

	p.logger.Debug("workers added",
		zap.Int("count", count),
		zap.Int("threads", p.threadCount),
	)
	return nil
}

// RemoveThread pauses the fleet, waits for a worker to reach its select
// point, hands it the single exit token, and waits for it to leave. The
// previous run state is restored on every exit path.
func (p *Pool[T]) RemoveThread() error {
	p.opMtx.Lock()
	defer p.opMtx.Unlock()

	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)

	if p.threadCount == 0 {
		return ErrNoThread
	}

	newCount := p.threadCount - 1
	prevState := p.state
	p.state = Paused

	setStateBack := syncx.NewGuard(func() {
		if newCount != 0 {
			p.state = prevState
			p.queueCV.NotifyAll()
		}
	})
	defer setStateBack.Run()

	if err := p.clientCV.WaitPred(lk, func() bool { return p.activeCount != p.threadCount }); err != nil {
		return err
	}

	p.action |= finish
	p.queueCV.NotifyOne()

	if err := p.clientCV.WaitPred(lk, func() bool { return p.threadCount == newCount }); err != nil {
		return err
	}

	p.logger.Debug("worker removed", zap.Int("threads", p.threadCount))
	return nil
}

// Clear shuts every worker down: it pauses the fleet, waits for
// in-flight tasks to finish, orders all workers out, discards the
// backlog, and waits for the thread counter to drain. Pending tasks do
// not run; Clear is a shutdown, not a drain.
//
// Calling Clear on a pool that already has no workers is an error.
func (p *Pool[T]) Clear() error { return p.clear(false) }

// Close is the teardown entry point: it completes Clear, tolerating a
// pool that is already empty.
func (p *Pool[T]) Close() error { return p.clear(true) }

func (p *Pool[T]) clear(closing bool) error {
	p.opMtx.Lock()
	defer p.opMtx.Unlock()

	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)

	if p.threadCount == 0 {
		if closing {
			return nil
		}
		return ErrNoThread
	}

	p.state = Paused

	if err := p.clientCV.WaitPred(lk, func() bool { return p.activeCount == 0 }); err != nil {
		return err
	}

	p.action |= finish | finishAll
	p.queue.Clear()
	p.queueCV.NotifyAll()

	if err := p.clientCV.WaitPred(lk, func() bool { return p.threadCount == 0 }); err != nil {
		return err
	}

	p.logger.Debug("pool cleared")
	return nil
}

// Enqueue pushes one task and wakes one worker.
func (p *Pool[T]) Enqueue(task T) {
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)

	p.queue.Emplace(task)
	p.metrics.submitted(1)
	p.queueCV.NotifyOne()
}

// EnqueueAll pushes every task and wakes all workers once at the end.
// If an emplace panics mid-range, the tasks already pushed are still
// announced before the panic propagates.
func (p *Pool[T]) EnqueueAll(tasks []T) {
	if len(tasks) == 0 {
		return
	}
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)

	count := 0
	notify := syncx.NewGuard(func() {
		if count != 0 {
			p.metrics.submitted(count)
			p.queueCV.NotifyAll()
		}
	})
	defer notify.Run()

	for _, task := range tasks {
		p.queue.Emplace(task)
		count++
	}
}

// DiscardQueue drops every pending task. In-flight tasks are unaffected.
func (p *Pool[T]) DiscardQueue() {
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)
	p.queue.Clear()
}

// Pause stops workers from dequeuing; tasks already running finish.
// Reports whether the state changed.
func (p *Pool[T]) Pause() bool {
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)
	if p.state == Paused {
		return false
	}
	p.state = Paused
	return true
}

// Resume lets workers dequeue again. Reports whether the state changed;
// resuming a pool with no workers is an error.
func (p *Pool[T]) Resume() (bool, error) {
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)
	if p.state == Executing {
		return false, nil
	}
	if p.threadCount == 0 {
		return false, ErrNoThreadToResume
	}
	p.state = Executing
	p.queueCV.NotifyAll()
	return true, nil
}

// Join blocks until the backlog is drained and no worker is running a
// task. Idempotent; does not change state. A paused pool with pending
// tasks keeps Join blocked until someone resumes it.
func (p *Pool[T]) Join() {
	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)
	_ = p.clientCV.WaitPred(lk, func() bool {
		return p.queue.Empty() && p.activeCount == 0
	})
}

func (p *Pool[T]) unlockIfOwns(lk *syncx.UniqueLock) {
	if lk.Owns() {
		_ = lk.Unlock()
	}
}

// routine is the body of a single worker, run once between spawn and
// exit. It registers itself in the thread counter, loops selecting
// tasks, and unregisters through its exit guard on every path. A
// failure escaping the loop's own bookkeeping is delivered once to the
// policy; a failure inside a user task is swallowed and the loop
// continues.
func (p *Pool[T]) routine() {
	defer func() {
		if r := recover(); r != nil {
			p.policy.Handle(r)
		}
	}()

	lk := syncx.NewUniqueLock(p.queueMtx)
	defer p.unlockIfOwns(lk)

	p.threadCount++
	p.metrics.live(1)
	isActive := false

	onExit := syncx.NewGuard(func() {
		p.threadCount--
		p.metrics.live(-1)
		if isActive {
			p.activeCount--
			p.metrics.active(-1)
		}
		p.clientCV.NotifyAll()
	})
	defer onExit.Run()

	for {
		if isActive {
			isActive = false
			p.activeCount--
			p.metrics.active(-1)
		}

		p.clientCV.NotifyAll()

		if err := p.queueCV.WaitPred(lk, func() bool {
			return p.action != 0 || (p.state != Paused && !p.queue.Empty())
		}); err != nil {
			panic(err)
		}

		if p.action&finish != 0 {
			if p.action&finishAll == 0 {
				// consume the single exit token
				p.action &^= finish
				break
			}
			if p.threadCount == 1 { // last one
				p.action = 0
			}
			break
		}

		task := *p.queue.Front()
		p.queue.Pop()

		isActive = true
		p.activeCount++
		p.metrics.active(1)

		p.clientCV.NotifyAll()

		p.runOutsideLock(lk, task)
	}
}

// runOutsideLock releases the queue mutex, runs the task, and
// reacquires the mutex on every exit path.
func (p *Pool[T]) runOutsideLock(lk *syncx.UniqueLock, task T) {
	if err := lk.Unlock(); err != nil {
		panic(err)
	}

	lockAgain := syncx.NewGuard(func() {
		if err := lk.Lock(); err != nil {
			panic(err)
		}
	})
	defer lockAgain.Run()

	p.runTask(task)
}

// runTask executes one user task, swallowing any panic it raises.
func (p *Pool[T]) runTask(task T) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.metrics.failed(time.Since(start))
			p.logger.Error("task panicked", zap.Any("panic", r))
			return
		}
		p.metrics.completed(time.Since(start))
	}()
	task.Invoke()
}
