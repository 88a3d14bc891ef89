package beacon

import "testing"

func TestQueue_EnqueueDequeue(t *testing.T) {
	q := NewQueue()
	q.Enqueue(track("test"))

	dequeued, ok := q.Dequeue()
	if !ok || eventName(dequeued) != "test" {
		t.Fatal("expected to dequeue message")
	}
}

func TestQueue_IsEmpty(t *testing.T) {
	q := NewQueue()
	if !q.IsEmpty() {
		t.Fatal("expected queue to be empty")
	}
	q.Enqueue(track("test"))
	if q.IsEmpty() {
		t.Fatal("expected queue not to be empty")
	}
}

func TestQueue_Len(t *testing.T) {
	q := NewQueue()
	if q.Len() != 0 {
		t.Fatal("expected length 0")
	}
	q.Enqueue(track("test1"))
	q.Enqueue(track("test2"))
	if q.Len() != 2 {
		t.Fatal("expected length 2")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Enqueue(track("test"))
	q.Clear()
	if !q.IsEmpty() {
		t.Fatal("expected queue to be empty after clear")
	}
}

func TestQueue_ToSlice(t *testing.T) {
	q := NewQueue()
	q.Enqueue(track("test1"))
	q.Enqueue(track("test2"))

	slice := q.ToSlice()
	if len(slice) != 2 || eventName(slice[0]) != "test1" || eventName(slice[1]) != "test2" {
		t.Fatal("expected slice with 2 messages in order")
	}
	if q.Len() != 2 {
		t.Fatal("ToSlice must not drain the queue")
	}
}

func TestQueue_Drain(t *testing.T) {
	q := NewQueue()
	q.Enqueue(track("test1"))
	q.Enqueue(track("test2"))

	drained := q.Drain()
	if len(drained) != 2 || !q.IsEmpty() {
		t.Fatal("expected drain to return everything and empty the queue")
	}
}

func TestQueue_Requeue(t *testing.T) {
	q := NewQueue()
	q.Enqueue(track("newer"))
	q.Requeue([]Message{track("first"), track("second")})

	slice := q.ToSlice()
	want := []string{"first", "second", "newer"}
	for i, name := range want {
		if eventName(slice[i]) != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, eventName(slice[i]))
		}
	}
}

func TestQueue_LoadFromSlice(t *testing.T) {
	q := NewQueue()
	q.LoadFromSlice([]Message{track("test1"), track("test2")})

	if q.Len() != 2 {
		t.Fatal("expected length 2")
	}
	dequeued, _ := q.Dequeue()
	if eventName(dequeued) != "test1" {
		t.Fatal("expected first message to be test1")
	}
}

func TestQueue_DequeueEmpty(t *testing.T) {
	q := NewQueue()
	_, ok := q.Dequeue()
	if ok {
		t.Fatal("expected dequeue to fail on empty queue")
	}
}
