// Package notify queues transient notifications for the next page render
package notify

import (
	"sync"
	"time"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Toast is a single notification
type Toast struct {
	Message   string
	Level     Level
	CreatedAt time.Time
}

const maxPending = 5

// Queue holds pending toasts for one session. The oldest toast is dropped
// when the queue is full.
type Queue struct {
	mu      sync.Mutex
	pending []Toast
	now     func() time.Time
}

func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

func (q *Queue) Notify(message string) {
	q.push(message, LevelInfo)
}

func (q *Queue) Error(message string) {
	q.push(message, LevelError)
}

func (q *Queue) push(message string, level Level) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) >= maxPending {
		q.pending = q.pending[1:]
	}
	q.pending = append(q.pending, Toast{Message: message, Level: level, CreatedAt: q.now()})
}

// Drain returns pending toasts oldest first and empties the queue
func (q *Queue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.pending
	q.pending = nil
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
