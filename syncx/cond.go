package syncx

import (
	"sync"
	"time"
)

// Status reports the outcome of a timed wait.
type Status int

const (
	NoTimeout Status = iota
	Timeout
)

// Cond is a condition variable used together with a UniqueLock.
//
// Waiters park on per-waiter channels held in a FIFO list, so NotifyOne
// wakes exactly one waiter and NotifyAll wakes every waiter registered
// at the time of the call. A waiter registers itself before releasing
// the caller's lock, which closes the window where a notification could
// be lost between the predicate check and the park.
//
// Wake-ups may be spurious; use the predicate variants, or re-check the
// condition after every plain Wait.
type Cond struct {
	mu      sync.Mutex
	waiters []chan struct{}
}

func NewCond() *Cond { return &Cond{} }

// NotifyOne wakes the longest-waiting waiter, if any.
func (c *Cond) NotifyOne() {
	c.mu.Lock()
	if len(c.waiters) > 0 {
		close(c.waiters[0])
		c.waiters = c.waiters[1:]
	}
	c.mu.Unlock()
}

// NotifyAll wakes every current waiter.
func (c *Cond) NotifyAll() {
	c.mu.Lock()
	for _, w := range c.waiters {
		close(w)
	}
	c.waiters = nil
	c.mu.Unlock()
}

// Wait atomically releases lk, blocks until notified, and reacquires lk
// before returning. lk must be owned by the caller.
func (c *Cond) Wait(lk *UniqueLock) error {
	if !lk.Owns() {
		return ErrNotOwned
	}
	w := c.register()
	if err := lk.Unlock(); err != nil {
		c.remove(w)
		return err
	}
	<-w
	return lk.Lock()
}

// WaitPred waits until pred holds. pred is evaluated with lk held.
func (c *Cond) WaitPred(lk *UniqueLock, pred func() bool) error {
	for !pred() {
		if err := c.Wait(lk); err != nil {
			return err
		}
	}
	return nil
}

// WaitFor is Wait bounded by d.
func (c *Cond) WaitFor(lk *UniqueLock, d time.Duration) (Status, error) {
	return c.WaitUntil(lk, time.Now().Add(d))
}

// WaitUntil is Wait bounded by an absolute deadline on the wall clock.
// Callers using another clock convert before the call.
func (c *Cond) WaitUntil(lk *UniqueLock, deadline time.Time) (Status, error) {
	if !lk.Owns() {
		return NoTimeout, ErrNotOwned
	}
	w := c.register()
	if err := lk.Unlock(); err != nil {
		c.remove(w)
		return NoTimeout, err
	}

	st := NoTimeout
	t := time.NewTimer(time.Until(deadline))
	select {
	case <-w:
	case <-t.C:
		// A notification may have raced the timer; it counts as a wake
		// only if the waiter was already unregistered.
		if c.remove(w) {
			st = Timeout
		}
	}
	t.Stop()

	if err := lk.Lock(); err != nil {
		return st, err
	}
	return st, nil
}

// WaitForPred is WaitUntilPred against a relative timeout.
func (c *Cond) WaitForPred(lk *UniqueLock, d time.Duration, pred func() bool) (bool, error) {
	return c.WaitUntilPred(lk, time.Now().Add(d), pred)
}

// WaitUntilPred waits until pred holds or the deadline passes. The
// boolean reports whether pred held at the final wake.
func (c *Cond) WaitUntilPred(lk *UniqueLock, deadline time.Time, pred func() bool) (bool, error) {
	for !pred() {
		st, err := c.WaitUntil(lk, deadline)
		if err != nil {
			return false, err
		}
		if st == Timeout {
			return pred(), nil
		}
	}
	return true, nil
}

func (c *Cond) register() chan struct{} {
	w := make(chan struct{})
	c.mu.Lock()
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()
	return w
}

// remove reports whether the waiter was still registered.
func (c *Cond) remove(w chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, q := range c.waiters {
		if q == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return true
		}
	}
	return false
}
