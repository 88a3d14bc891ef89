package beacon

import (
	"container/list"
	"sync"
)

// Queue represents a thread-safe FIFO queue of messages awaiting upload.
type Queue struct {
	mu   sync.Mutex
	list *list.List
}

// NewQueue creates and returns a new empty Queue.
func NewQueue() *Queue {
	return &Queue{list: list.New()}
}

// Enqueue adds a message to the end of the queue.
func (q *Queue) Enqueue(m Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.PushBack(m)
}

// Requeue puts messages back at the front of the queue, preserving their order.
func (q *Queue) Requeue(messages []Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := len(messages) - 1; i >= 0; i-- {
		q.list.PushFront(messages[i])
	}
}

// Dequeue removes and returns the front message in the queue.
// It returns false if the queue is empty.
func (q *Queue) Dequeue() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.list.Len() == 0 {
		return nil, false
	}
	front := q.list.Front()
	q.list.Remove(front)
	return front.Value.(Message), true
}

// IsEmpty reports whether the queue has no elements.
func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Len() == 0
}

// Len returns the number of messages currently in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Len()
}

// Clear removes all messages from the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.Init()
}

// ToSlice returns all messages in the queue as a slice, preserving order.
func (q *Queue) ToSlice() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.toSliceLocked()
}

// Drain returns all messages and empties the queue in one step.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	messages := q.toSliceLocked()
	q.list.Init()
	return messages
}

func (q *Queue) toSliceLocked() []Message {
	messages := make([]Message, 0, q.list.Len())
	for e := q.list.Front(); e != nil; e = e.Next() {
		messages = append(messages, e.Value.(Message))
	}
	return messages
}

// LoadFromSlice replaces the queue contents with the provided messages.
func (q *Queue) LoadFromSlice(messages []Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.Init()
	for _, m := range messages {
		q.list.PushBack(m)
	}
}
