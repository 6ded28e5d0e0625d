package storage

import (
	"context"
	"sync"
)

const defaultQueueSize = 100

// Queue is a bounded FIFO. When full, Put evicts the oldest element
// so the newest is never dropped.
type Queue[T any] struct {
	mu    sync.Mutex
	items chan T
}

func NewQueue[T any](size int) *Queue[T] {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue[T]{items: make(chan T, size)}
}

// Put appends val, discarding the oldest queued element when no slot
// is free. It reports whether an element was evicted.
func (q *Queue[T]) Put(val T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	evicted := false
	for {
		select {
		case q.items <- val:
			return evicted
		default:
			select {
			case <-q.items:
				evicted = true
			default:
			}
		}
	}
}

// Get blocks until an element is available or ctx is done.
func (q *Queue[T]) Get(ctx context.Context) (T, error) {
	select {
	case val := <-q.items:
		return val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryGet returns the oldest element without blocking.
func (q *Queue[T]) TryGet() (T, bool) {
	select {
	case val := <-q.items:
		return val, true
	default:
		var zero T
		return zero, false
	}
}

func (q *Queue[T]) Len() int {
	return len(q.items)
}

func (q *Queue[T]) Cap() int {
	return cap(q.items)
}
