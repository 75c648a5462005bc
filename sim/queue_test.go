package sim

import "testing"

func TestWaitQueue_FIFOOrder(t *testing.T) {
	// GIVEN customers enqueued in order [1, 2, 3]
	wq := &WaitQueue{}
	c1 := &Customer{ID: 1}
	c2 := &Customer{ID: 2}
	c3 := &Customer{ID: 3}
	wq.Enqueue(c1)
	wq.Enqueue(c2)
	wq.Enqueue(c3)

	// WHEN dequeuing all
	var ids []int64
	for wq.Len() > 0 {
		ids = append(ids, wq.Dequeue().ID)
	}

	// THEN insertion order equals service order
	want := []int64{1, 2, 3}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("dequeue order[%d]: got %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestWaitQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	wq := &WaitQueue{}
	c1 := &Customer{ID: 1}
	wq.Enqueue(c1)
	wq.Enqueue(&Customer{ID: 2})

	if got := wq.Peek(); got != c1 {
		t.Errorf("Peek: got %v, want customer 1", got)
	}
	if wq.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", wq.Len())
	}
}

func TestWaitQueue_Dequeue_Empty_ReturnsNil(t *testing.T) {
	wq := &WaitQueue{}
	if got := wq.Dequeue(); got != nil {
		t.Errorf("Dequeue on empty queue: got %v, want nil", got)
	}
}

func TestWaitQueue_Remove_MiddleElement(t *testing.T) {
	// GIVEN a queue [1, 2, 3]
	wq := &WaitQueue{}
	c1 := &Customer{ID: 1}
	c2 := &Customer{ID: 2}
	c3 := &Customer{ID: 3}
	wq.Enqueue(c1)
	wq.Enqueue(c2)
	wq.Enqueue(c3)

	// WHEN removing the middle customer (reneging)
	if !wq.Remove(c2) {
		t.Fatal("Remove: got false, want true")
	}

	// THEN the remaining order is preserved
	if wq.Len() != 2 {
		t.Fatalf("Len after Remove: got %d, want 2", wq.Len())
	}
	if wq.Dequeue() != c1 || wq.Dequeue() != c3 {
		t.Error("Remove disturbed the order of remaining customers")
	}
}

func TestWaitQueue_Remove_Absent_ReturnsFalse(t *testing.T) {
	wq := &WaitQueue{}
	wq.Enqueue(&Customer{ID: 1})
	if wq.Remove(&Customer{ID: 99}) {
		t.Error("Remove of absent customer: got true, want false")
	}
	if wq.Len() != 1 {
		t.Errorf("Remove of absent customer changed length: got %d, want 1", wq.Len())
	}
}
