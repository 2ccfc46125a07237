package queue_test

import (
	"math/rand"
	"testing"

	"github.com/fsortio/fsort/queue"
)

func intLess(a, b int) bool {
	return a < b
}

func TestEmpty(t *testing.T) {
	q := queue.NewPriorityQueue(intLess)
	if l := q.Len(); l != 0 {
		t.Fatalf("queue len is %d, expected 0", l)
	}
}

func TestDuplicates(t *testing.T) {
	q := queue.NewPriorityQueue(intLess)
	for i := 20; i > 0; i-- {
		q.Push(0) // all elements are the same
	}
	if l := q.Len(); l != 20 {
		t.Fatalf("queue len is %d, expected 20", l)
	}

	for i := 1; q.Len() > 0; i++ {
		x := q.Peek()
		y := q.Pop()
		if x != y {
			t.Fatalf("q.Peek() and q.Pop() returned different values %d %d", x, y)
		}
		if x != 0 {
			t.Errorf("%d.th pop got %d; want 0", i, x)
		}
	}
}

func TestPopAscending(t *testing.T) {
	q := queue.NewPriorityQueue(intLess)
	vals := rand.New(rand.NewSource(1)).Perm(100)
	for _, v := range vals {
		q.Push(v)
	}

	prev := -1
	for q.Len() > 0 {
		v := q.Pop()
		if v <= prev {
			t.Fatalf("popped %d after %d", v, prev)
		}
		prev = v
	}
}

func TestPeekUpdate(t *testing.T) {
	q := queue.NewPriorityQueue(func(a, b *int) bool {
		return *a < *b
	})
	vals := []int{5, 1, 9}
	for i := range vals {
		q.Push(&vals[i])
	}

	if v := *q.Peek(); v != 1 {
		t.Fatalf("peek got %d, want 1", v)
	}

	// advance the front cursor in place, then restore heap order
	*q.Peek() = 100
	q.PeekUpdate()
	if v := *q.Peek(); v != 5 {
		t.Fatalf("peek after update got %d, want 5", v)
	}

	want := []int{5, 9, 100}
	for _, w := range want {
		if v := *q.Pop(); v != w {
			t.Fatalf("pop got %d, want %d", v, w)
		}
	}
}
