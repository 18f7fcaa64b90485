package queue

import (
	"testing"
	"time"

	"github.com/aethersense/aethersense/internal/aetherr"
)

func TestPushPopFIFO(t *testing.T) {
	q := NewBounded[int](4)
	for i := 1; i <= 3; i++ {
		if !q.Push(i, Block, 0) {
			t.Fatalf("push %d should have succeeded", i)
		}
	}
	for i := 1; i <= 3; i++ {
		v, ok := q.Pop()
		if !ok || v != i {
			t.Errorf("expected %d, got %d ok=%v", i, v, ok)
		}
	}
}

func TestDropNewestRejectsWhenFull(t *testing.T) {
	q := NewBounded[int](2)
	q.Push(1, DropNewest, 0)
	q.Push(2, DropNewest, 0)
	if q.Push(3, DropNewest, 0) {
		t.Error("DropNewest should reject when full")
	}
	v, _ := q.Pop()
	if v != 1 {
		t.Errorf("expected head to remain 1, got %d", v)
	}
}

func TestDropOldestEvictsHead(t *testing.T) {
	q := NewBounded[int](2)
	q.Push(1, DropOldest, 0)
	q.Push(2, DropOldest, 0)
	if !q.Push(3, DropOldest, 0) {
		t.Error("DropOldest should always accept")
	}
	v, _ := q.Pop()
	if v != 2 {
		t.Errorf("expected oldest (1) evicted, head now 2, got %d", v)
	}
}

func TestBlockPushTimesOutWhenFull(t *testing.T) {
	q := NewBounded[int](1)
	q.Push(1, Block, 0)
	if q.Push(2, Block, 10*time.Millisecond) {
		t.Error("blocked push should time out and reject when full")
	}
}

func TestPopBlockingTimeout(t *testing.T) {
	q := NewBounded[int](1)
	_, err := q.PopBlocking(10 * time.Millisecond)
	if !aetherr.Is(err, aetherr.Timeout) {
		t.Errorf("expected Timeout error, got %v", err)
	}
}
