package writer

import (
	"sync"
	"sync/atomic"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
)

// queue is a bounded, non-blocking record queue with an atomic depth gauge.
// Once closed, enqueues are refused and consumers drain what is left.
type queue struct {
	mu       sync.RWMutex
	ch       chan *blog.Record
	closed   bool
	depth    atomic.Int64
	capacity int
}

func newQueue(capacity int) *queue {
	return &queue{ch: make(chan *blog.Record, capacity), capacity: capacity}
}

// tryEnqueue reports false when the queue is full or closed.
func (q *queue) tryEnqueue(r *blog.Record) (ok bool, closed bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false, true
	}
	select {
	case q.ch <- r:
		q.depth.Add(1)
		return true, false
	default:
		return false, false
	}
}

func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// records is drained by workers; callers must call markDequeued per receive.
func (q *queue) records() <-chan *blog.Record { return q.ch }

func (q *queue) markDequeued() { q.depth.Add(-1) }

func (q *queue) size() int { return int(q.depth.Load()) }
