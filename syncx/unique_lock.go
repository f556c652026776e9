package syncx

import "time"

// UniqueLock is an ownership guard over a Mutex. Unlike a bare Mutex it
// knows whether it currently holds the lock, which lets callers release
// and reacquire around a blocking region and lets Cond hand the lock
// back to the right owner.
//
// A UniqueLock is not safe for concurrent use; it belongs to one
// goroutine at a time.
type UniqueLock struct {
	m    *Mutex
	owns bool
}

// NewUniqueLock acquires m and returns an owning guard.
func NewUniqueLock(m *Mutex) *UniqueLock {
	m.Lock()
	return &UniqueLock{m: m, owns: true}
}

// DeferLock binds m without acquiring it.
func DeferLock(m *Mutex) *UniqueLock {
	return &UniqueLock{m: m}
}

// AdoptLock binds m, assuming the caller already holds it.
func AdoptLock(m *Mutex) *UniqueLock {
	return &UniqueLock{m: m, owns: true}
}

// Lock acquires the associated mutex.
func (l *UniqueLock) Lock() error {
	if l.m == nil {
		return ErrNoMutex
	}
	if l.owns {
		return ErrAlreadyOwned
	}
	l.m.Lock()
	l.owns = true
	return nil
}

// TryLock attempts the acquisition without blocking.
func (l *UniqueLock) TryLock() (bool, error) {
	if l.m == nil {
		return false, ErrNoMutex
	}
	if l.owns {
		return false, ErrAlreadyOwned
	}
	l.owns = l.m.TryLock()
	return l.owns, nil
}

// TryLockFor attempts the acquisition, giving up after d.
func (l *UniqueLock) TryLockFor(d time.Duration) (bool, error) {
	if l.m == nil {
		return false, ErrNoMutex
	}
	if l.owns {
		return false, ErrAlreadyOwned
	}
	l.owns = l.m.TryLockFor(d)
	return l.owns, nil
}

// Unlock releases the associated mutex.
func (l *UniqueLock) Unlock() error {
	if !l.owns || l.m == nil {
		return ErrNotOwned
	}
	l.owns = false
	return l.m.Unlock()
}

// Owns reports whether the guard currently holds its mutex.
func (l *UniqueLock) Owns() bool { return l.owns }

// Mutex returns the associated mutex, nil after Release.
func (l *UniqueLock) Mutex() *Mutex { return l.m }

// Release disassociates the guard from its mutex without unlocking.
// The caller becomes responsible for the lock state.
func (l *UniqueLock) Release() *Mutex {
	m := l.m
	l.m = nil
	l.owns = false
	return m
}
