package queue

import (
	"context"
	"fmt"
	"sync"
)

// Queue is a bounded FIFO between one producer and one consumer.
// Push blocks while the queue is full. Only the producer may call Close.
type Queue[T any] struct {
	items     chan T
	closeOnce sync.Once
}

// New creates a queue holding at most capacity items.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Queue[T]{
		items: make(chan T, capacity),
	}
}

// Push appends item, waiting for free space or ctx cancellation.
func (q *Queue[T]) Push(ctx context.Context, item T) error {
	select {
	case q.items <- item:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("push to queue: %w", ctx.Err())
	}
}

// Pop returns the oldest item. ok is false once the queue is closed and
// drained, or when ctx is done.
func (q *Queue[T]) Pop(ctx context.Context) (T, bool) {
	var zero T

	select {
	case item, ok := <-q.items:
		return item, ok
	case <-ctx.Done():
		return zero, false
	}
}

// Close signals the consumer that no more items will arrive.
func (q *Queue[T]) Close() {
	q.closeOnce.Do(func() {
		close(q.items)
	})
}

func (q *Queue[T]) Len() int {
	return len(q.items)
}

func (q *Queue[T]) Cap() int {
	return cap(q.items)
}
