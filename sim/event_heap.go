package sim

import "container/heap"

// heapItem pairs an event with the monotonic sequence number assigned when
// it was scheduled. The sequence breaks timestamp ties.
type heapItem struct {
	event Event
	seq   uint64
}

// EventHeap implements a priority queue of pending events with deterministic
// ordering: timestamp ascending, then insertion order (FIFO among events
// scheduled for exactly the same time). Deterministic extraction order is
// what makes realizations reproducible from a seed.
type EventHeap struct {
	items   []heapItem
	nextSeq uint64
}

// NewEventHeap creates a new empty event heap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{items: make([]heapItem, 0)}
	heap.Init(h)
	return h
}

// Len implements heap.Interface.
func (h *EventHeap) Len() int {
	return len(h.items)
}

// Less implements heap.Interface: timestamp first, then insertion sequence.
func (h *EventHeap) Less(i, j int) bool {
	ti, tj := h.items[i].event.Timestamp(), h.items[j].event.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return h.items[i].seq < h.items[j].seq
}

// Swap implements heap.Interface.
func (h *EventHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// Push implements heap.Interface.
func (h *EventHeap) Push(x interface{}) {
	h.items = append(h.items, x.(heapItem))
}

// Pop implements heap.Interface.
func (h *EventHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[0 : n-1]
	return item
}

// Schedule adds an event to the heap, assigning its insertion sequence.
func (h *EventHeap) Schedule(e Event) {
	heap.Push(h, heapItem{event: e, seq: h.nextSeq})
	h.nextSeq++
}

// PopNext removes and returns the earliest event.
// Fails with ErrEmptyQueue when no events remain.
func (h *EventHeap) PopNext() (Event, error) {
	if h.Len() == 0 {
		return nil, ErrEmptyQueue
	}
	return heap.Pop(h).(heapItem).event, nil
}

// Peek returns the earliest event without removing it.
// Fails with ErrEmptyQueue when no events remain.
func (h *EventHeap) Peek() (Event, error) {
	if h.Len() == 0 {
		return nil, ErrEmptyQueue
	}
	return h.items[0].event, nil
}

// Empty reports whether no events remain.
func (h *EventHeap) Empty() bool {
	return h.Len() == 0
}
