// EventQueue: the pending-event structure that drives simulated time forward.

package sim

import "container/heap"

// Event is implemented by everything the simulator can schedule. Events are
// immutable once created; Execute applies the event's state transition and
// may schedule follow-up events.
type Event interface {
	// When returns the simulated time at which the event fires.
	When() float64
	// Kind names the event type for logs and error reports.
	Kind() string
	// Execute advances simulation state. A non-nil error aborts the replication.
	Execute(sim *Simulator) error
}

// EventQueue orders pending events by (timestamp, insertion sequence).
// The sequence tie-break makes same-instant events fire in scheduling order,
// so two runs with identical seeds produce an identical event trace.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue struct {
	items eventHeap
	seq   uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{items: make(eventHeap, 0)}
}

// Schedule inserts an event in O(log n). Clock-ordering relative to the
// current simulation time is enforced by Simulator.Schedule, which owns the
// clock.
func (q *EventQueue) Schedule(ev Event) {
	q.seq++
	heap.Push(&q.items, queuedEvent{event: ev, seq: q.seq})
}

// PopNext removes and returns the globally earliest pending event.
// The second return value is false when no events remain.
func (q *EventQueue) PopNext() (Event, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return heap.Pop(&q.items).(queuedEvent).event, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.items)
}

type queuedEvent struct {
	event Event
	seq   uint64
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].event.When() != h[j].event.When() {
		return h[i].event.When() < h[j].event.When()
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
