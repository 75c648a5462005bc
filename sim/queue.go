// Implements the WaitQueue, which holds all customers waiting for a free server.
// Customers are enqueued on arrival and dequeued in FIFO order when a server frees up.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of customers awaiting service. Insertion order
// is service order; the only out-of-order removal is Remove, used when a
// waiting customer reneges.
type WaitQueue struct {
	queue []*Customer
}

// Enqueue adds a customer to the back of the wait queue.
func (wq *WaitQueue) Enqueue(c *Customer) {
	wq.queue = append(wq.queue, c)
}

// Dequeue removes and returns the customer at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Customer {
	if len(wq.queue) == 0 {
		return nil
	}
	c := wq.queue[0]
	wq.queue = wq.queue[1:]
	return c
}

// Peek returns the customer at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Customer {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Remove deletes the given customer from the queue, preserving the order of
// the rest. Returns false if the customer is not queued.
func (wq *WaitQueue) Remove(c *Customer) bool {
	for i, q := range wq.queue {
		if q == c {
			wq.queue = append(wq.queue[:i], wq.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of customers in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, c := range wq.queue {
		sb.WriteString(fmt.Sprint(c.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
