// Package input hands button edges from callback goroutines to the main loop.
package input

import (
	"log"
	"sync"

	"github.com/sweeney/enviro-sensor/internal/logic"
)

// DefaultCapacity is enough for several seconds of button mashing at the
// debounce rate.
const DefaultCapacity = 32

// Sink accepts input events. Edge callbacks and remote bridges write to it.
type Sink interface {
	Push(ev logic.InputEvent)
}

// Queue is a fixed-capacity FIFO of input events. When full, the oldest
// event is dropped. Safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	buf      []logic.InputEvent
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any event was dropped since last drain
}

// NewQueue creates a Queue holding at most capacity events.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		buf:      make([]logic.InputEvent, capacity),
		capacity: capacity,
	}
}

// Push appends ev, dropping the oldest event if the queue is full.
func (q *Queue) Push(ev logic.InputEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == q.capacity {
		if !q.overflow {
			log.Printf("input: queue full (%d events), dropping oldest", q.capacity)
			q.overflow = true
		}
		// Overwrite oldest: head is already pointing at it
		q.buf[q.head] = ev
		q.head = (q.head + 1) % q.capacity
		return
	}
	q.buf[q.head] = ev
	q.head = (q.head + 1) % q.capacity
	q.count++
}

// Drain removes and returns all queued events, oldest first.
func (q *Queue) Drain() []logic.InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return nil
	}

	result := make([]logic.InputEvent, q.count)
	// Oldest item is at (head - count) mod capacity
	start := (q.head - q.count + q.capacity) % q.capacity
	for i := 0; i < q.count; i++ {
		result[i] = q.buf[(start+i)%q.capacity]
	}

	q.count = 0
	q.head = 0
	q.overflow = false
	return result
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
