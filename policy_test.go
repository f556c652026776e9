package tpool

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestRethrowRepanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "fatal" {
			t.Fatalf("recovered %v; want the original failure", r)
		}
	}()
	Rethrow{}.Handle("fatal")
	t.Fatal("handle returned")
}

// syncBuffer makes bytes.Buffer safe for the logger's writes and the
// test's read.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTryLogWritesFailure(t *testing.T) {
	var buf syncBuffer
	pol := NewTryLog(&buf)

	pol.Handle("queue mutex poisoned")

	out := buf.String()
	if !strings.Contains(out, "exception in pool thread") {
		t.Fatalf("log output missing header: %q", out)
	}
	if !strings.Contains(out, "queue mutex poisoned") {
		t.Fatalf("log output missing failure: %q", out)
	}
}

func TestTryLogZeroValueIsSilent(t *testing.T) {
	var pol TryLog
	pol.Handle("dropped") // must not panic
}

func TestPoolPolicyAccessor(t *testing.T) {
	var buf syncBuffer
	pol := NewTryLog(&buf)

	p, err := New[Func](1, NewFIFOQueue[Func](), Options{Policy: pol})
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer p.Close()

	if _, ok := p.Policy().(TryLog); !ok {
		t.Fatalf("policy = %T; want TryLog", p.Policy())
	}
}

func TestDefaultPolicyIsRethrow(t *testing.T) {
	p, err := New[Func](1, NewFIFOQueue[Func](), Options{})
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer p.Close()

	if _, ok := p.Policy().(Rethrow); !ok {
		t.Fatalf("policy = %T; want Rethrow", p.Policy())
	}
}
