package syncx

import (
	"errors"
	"sync/atomic"
)

// ErrNotJoinable is returned by Join or Detach on a thread whose handle
// has already been given up.
var ErrNotJoinable = errors.New("syncx: thread is not joinable")

var threadSeq atomic.Uint64

// ID identifies a spawned thread. IDs are unique for the lifetime of
// the process and never reused.
type ID uint64

// Thread is a handle over a goroutine started with Spawn. The handle
// stays joinable until Join or Detach.
//
// The handle itself is owned by one goroutine; it is not safe for
// concurrent Join/Detach calls.
type Thread struct {
	id       ID
	done     chan struct{}
	joinable bool
}

// Spawn runs fn on a fresh goroutine and returns its handle. The error
// return carries thread-creation failure on targets where spawning can
// exhaust resources; goroutine creation does not fail, so it is nil
// here, but callers propagate it all the same.
func Spawn(fn func()) (*Thread, error) {
	t := &Thread{
		id:       ID(threadSeq.Add(1)),
		done:     make(chan struct{}),
		joinable: true,
	}
	go func() {
		defer close(t.done)
		fn()
	}()
	return t, nil
}

func (t *Thread) ID() ID { return t.id }

// Joinable reports whether the handle still refers to the goroutine.
func (t *Thread) Joinable() bool { return t.joinable }

// Join blocks until the thread's function has returned.
func (t *Thread) Join() error {
	if !t.joinable {
		return ErrNotJoinable
	}
	<-t.done
	t.joinable = false
	return nil
}

// Detach gives up the handle; the goroutine keeps running on its own.
func (t *Thread) Detach() error {
	if !t.joinable {
		return ErrNotJoinable
	}
	t.joinable = false
	return nil
}
