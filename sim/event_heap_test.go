package sim

import (
	"errors"
	"math/rand"
	"testing"
)

func TestEventHeap_OrdersByTimestamp(t *testing.T) {
	h := NewEventHeap()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		h.Schedule(&ArrivalEvent{time: rng.Float64() * 100, RequestID: i})
	}

	last := -1.0
	for !h.Empty() {
		ev, err := h.PopNext()
		if err != nil {
			t.Fatalf("PopNext on non-empty heap: %v", err)
		}
		if ev.Timestamp() < last {
			t.Fatalf("extracted %v after %v, want non-decreasing", ev.Timestamp(), last)
		}
		last = ev.Timestamp()
	}
}

func TestEventHeap_FIFOAmongEqualTimestamps(t *testing.T) {
	h := NewEventHeap()
	// Interleave with other timestamps so the tie-break actually matters.
	h.Schedule(&ArrivalEvent{time: 7.0, RequestID: 99})
	for i := 0; i < 5; i++ {
		h.Schedule(&ArrivalEvent{time: 3.0, RequestID: i})
	}
	h.Schedule(&ArrivalEvent{time: 1.0, RequestID: 98})

	ev, _ := h.PopNext()
	if ev.(*ArrivalEvent).RequestID != 98 {
		t.Fatalf("first pop = request %d, want 98", ev.(*ArrivalEvent).RequestID)
	}
	for i := 0; i < 5; i++ {
		ev, _ := h.PopNext()
		if got := ev.(*ArrivalEvent).RequestID; got != i {
			t.Errorf("tie pop %d = request %d, want insertion order", i, got)
		}
	}
}

func TestEventHeap_EmptyPopAndPeekFail(t *testing.T) {
	h := NewEventHeap()

	if _, err := h.PopNext(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("PopNext on empty heap: got %v, want ErrEmptyQueue", err)
	}
	if _, err := h.Peek(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Peek on empty heap: got %v, want ErrEmptyQueue", err)
	}
}

func TestEventHeap_PeekDoesNotRemove(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(&ArrivalEvent{time: 2.5, RequestID: 0})

	peeked, err := h.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if h.Len() != 1 {
		t.Fatalf("Len after Peek = %d, want 1", h.Len())
	}
	popped, err := h.PopNext()
	if err != nil {
		t.Fatal(err)
	}
	if peeked != popped {
		t.Error("Peek and PopNext returned different events")
	}
	if !h.Empty() {
		t.Error("heap not empty after popping its only event")
	}
}
