package syncx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexTryLock(t *testing.T) {
	m := NewMutex()

	require.True(t, m.TryLock())
	assert.False(t, m.TryLock(), "second TryLock must fail while held")

	require.NoError(t, m.Unlock())
	assert.True(t, m.TryLock())
	require.NoError(t, m.Unlock())
}

func TestMutexUnlockUnlocked(t *testing.T) {
	m := NewMutex()
	assert.ErrorIs(t, m.Unlock(), ErrNotLocked)
}

func TestMutexTryLockForTimesOut(t *testing.T) {
	m := NewMutex()
	m.Lock()

	start := time.Now()
	ok := m.TryLockFor(20 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.NoError(t, m.Unlock())
	assert.True(t, m.TryLockFor(20*time.Millisecond))
	require.NoError(t, m.Unlock())
}

func TestMutexTryLockForSucceedsOnRelease(t *testing.T) {
	m := NewMutex()
	m.Lock()

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = m.Unlock()
	}()

	assert.True(t, m.TryLockFor(500*time.Millisecond))
	require.NoError(t, m.Unlock())
}

func TestUniqueLockOwnership(t *testing.T) {
	m := NewMutex()

	lk := NewUniqueLock(m)
	require.True(t, lk.Owns())
	assert.ErrorIs(t, lk.Lock(), ErrAlreadyOwned)

	require.NoError(t, lk.Unlock())
	assert.False(t, lk.Owns())
	assert.ErrorIs(t, lk.Unlock(), ErrNotOwned)

	require.NoError(t, lk.Lock())
	require.True(t, lk.Owns())
	require.NoError(t, lk.Unlock())
}

func TestUniqueLockDeferAndAdopt(t *testing.T) {
	m := NewMutex()

	lk := DeferLock(m)
	require.False(t, lk.Owns())
	require.NoError(t, lk.Lock())
	require.NoError(t, lk.Unlock())

	m.Lock()
	adopted := AdoptLock(m)
	require.True(t, adopted.Owns())
	require.NoError(t, adopted.Unlock())
}

func TestUniqueLockRelease(t *testing.T) {
	m := NewMutex()

	lk := NewUniqueLock(m)
	released := lk.Release()
	require.Same(t, m, released)
	assert.False(t, lk.Owns())
	assert.ErrorIs(t, lk.Lock(), ErrNoMutex)

	// the lock state stayed with the caller
	assert.False(t, m.TryLock())
	require.NoError(t, m.Unlock())
}

func TestUniqueLockTryLockFor(t *testing.T) {
	m := NewMutex()
	m.Lock()

	lk := DeferLock(m)
	ok, err := lk.TryLockFor(10 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, lk.Owns())

	require.NoError(t, m.Unlock())
	ok, err = lk.TryLockFor(10 * time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, lk.Unlock())
}
