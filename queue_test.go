package tpool

import "testing"

func drainFIFO(q *FIFOQueue[PriorityFunc]) []int {
	var got []int
	for !q.Empty() {
		got = append(got, (*q.Front()).Prio)
		q.Pop()
	}
	return got
}

func TestFIFOQueueOrder(t *testing.T) {
	q := NewFIFOQueue[PriorityFunc]()

	for i := 0; i < 5; i++ {
		q.Emplace(PriorityFunc{Prio: i})
	}
	got := drainFIFO(q)
	for i, prio := range got {
		if prio != i {
			t.Fatalf("got[%d] = %d; want %d", i, prio, i)
		}
	}
	if !q.Empty() || q.Len() != 0 {
		t.Fatalf("queue not empty after drain: len=%d", q.Len())
	}
}

func TestFIFOQueueGrowthAcrossWrap(t *testing.T) {
	q := NewFIFOQueue[PriorityFunc]()

	// wrap the ring before forcing a growth
	for i := 0; i < 40; i++ {
		q.Emplace(PriorityFunc{Prio: i})
	}
	for i := 0; i < 40; i++ {
		if got := (*q.Front()).Prio; got != i {
			t.Fatalf("front = %d; want %d", got, i)
		}
		q.Pop()
	}

	n := 3 * initialFifoCapacity
	for i := 0; i < n; i++ {
		q.Emplace(PriorityFunc{Prio: i})
	}
	if q.Len() != n {
		t.Fatalf("len = %d; want %d", q.Len(), n)
	}
	for i := 0; i < n; i++ {
		if got := (*q.Front()).Prio; got != i {
			t.Fatalf("front = %d after growth; want %d", got, i)
		}
		q.Pop()
	}
}

func TestFIFOQueueClear(t *testing.T) {
	q := NewFIFOQueue[PriorityFunc]()
	for i := 0; i < 10; i++ {
		q.Emplace(PriorityFunc{Prio: i})
	}
	q.Clear()
	if !q.Empty() || q.Len() != 0 {
		t.Fatal("queue not empty after clear")
	}
	q.Emplace(PriorityFunc{Prio: 7})
	if got := (*q.Front()).Prio; got != 7 {
		t.Fatalf("front after clear = %d; want 7", got)
	}
}

func TestPriorityQueueOrder(t *testing.T) {
	q := NewPriorityQueue[PriorityFunc]()

	for _, prio := range []int{1, 5, 3, 4, 2} {
		q.Emplace(PriorityFunc{Prio: prio})
	}

	want := []int{5, 4, 3, 2, 1}
	for _, w := range want {
		if q.Empty() {
			t.Fatal("queue drained early")
		}
		if got := (*q.Front()).Prio; got != w {
			t.Fatalf("front = %d; want %d", got, w)
		}
		q.Pop()
	}
	if !q.Empty() {
		t.Fatal("queue not empty after drain")
	}
}

func TestPriorityQueueClear(t *testing.T) {
	q := NewPriorityQueue[PriorityFunc]()
	for i := 0; i < 10; i++ {
		q.Emplace(PriorityFunc{Prio: i})
	}
	q.Clear()
	if !q.Empty() || q.Len() != 0 {
		t.Fatal("queue not empty after clear")
	}
}
