package syncx

import (
	"errors"
	"time"
)

var (
	// ErrNotLocked is returned when unlocking a mutex no goroutine holds.
	ErrNotLocked = errors.New("syncx: unlock of an unlocked mutex")

	// ErrNotOwned is returned when a guard operation requires ownership
	// the guard does not have.
	ErrNotOwned = errors.New("syncx: guard does not own its mutex")

	// ErrAlreadyOwned is returned when re-locking a guard that already
	// owns its mutex.
	ErrAlreadyOwned = errors.New("syncx: guard already owns its mutex")

	// ErrNoMutex is returned by a guard that has been released from its mutex.
	ErrNoMutex = errors.New("syncx: guard has no associated mutex")
)

// Mutex is a non-reentrant mutual exclusion lock with timed acquisition.
//
// The lock state lives in a one-slot channel so that TryLockFor can
// select against a timer; Cond relies on the same property to park
// waiters outside the lock. Re-locking from the holding goroutine
// deadlocks, as with sync.Mutex. The zero value is not usable; call
// NewMutex.
type Mutex struct {
	slot chan struct{}
}

func NewMutex() *Mutex {
	return &Mutex{slot: make(chan struct{}, 1)}
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() { m.slot <- struct{}{} }

// TryLock acquires the mutex without blocking, reporting success.
func (m *Mutex) TryLock() bool {
	select {
	case m.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// TryLockFor acquires the mutex, giving up after d. Reports success.
func (m *Mutex) TryLockFor(d time.Duration) bool {
	if m.TryLock() {
		return true
	}
	if d <= 0 {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case m.slot <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

// TryLockUntil acquires the mutex, giving up at deadline. The deadline
// is measured against the wall clock.
func (m *Mutex) TryLockUntil(deadline time.Time) bool {
	return m.TryLockFor(time.Until(deadline))
}

// Unlock releases the mutex.
func (m *Mutex) Unlock() error {
	select {
	case <-m.slot:
		return nil
	default:
		return ErrNotLocked
	}
}
