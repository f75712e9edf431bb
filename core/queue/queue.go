package queue

import (
	"context"
	"sync/atomic"
	"time"
)

// Policy controls what Enqueue does when the queue is full.
type Policy int

const (
	// PolicyBlock suspends the enqueue until space frees, bounded by the
	// caller's context and the optional block timeout.
	PolicyBlock Policy = iota

	// PolicyDropNewest discards the incoming item and reports ErrQueueFull.
	PolicyDropNewest

	// PolicyDropOldest evicts the oldest unread item to admit the new one.
	PolicyDropOldest
)

// String returns the policy name as used in configuration.
func (p Policy) String() string {
	switch p {
	case PolicyBlock:
		return "block"
	case PolicyDropNewest:
		return "drop-newest"
	case PolicyDropOldest:
		return "drop-oldest"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a configuration string into a Policy.
// Recognized values: "block", "drop-newest", "drop-oldest".
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "block":
		return PolicyBlock, true
	case "drop-newest":
		return PolicyDropNewest, true
	case "drop-oldest":
		return PolicyDropOldest, true
	default:
		return PolicyBlock, false
	}
}

// Stats provides observability counters for monitoring and debugging.
type Stats struct {
	Len      int   // Items currently buffered
	Cap      int   // Configured capacity
	Enqueued int64 // Total items accepted
	Dropped  int64 // Items discarded (drop-newest overflow or block timeout)
	Evicted  int64 // Items evicted to make room (drop-oldest overflow)
	Closed   bool  // Whether the queue has been closed
}

// Queue is a bounded FIFO buffer of items of type T with a fixed overflow
// policy. The zero value is not usable; use New.
type Queue[T any] struct {
	ch           chan T
	done         chan struct{}
	closed       atomic.Bool
	policy       Policy
	blockTimeout time.Duration

	enqueued atomic.Int64
	dropped  atomic.Int64
	evicted  atomic.Int64
}

// Option configures a Queue.
type Option[T any] func(*Queue[T])

// WithPolicy sets the overflow policy. Default is PolicyBlock.
func WithPolicy[T any](p Policy) Option[T] {
	return func(q *Queue[T]) {
		q.policy = p
	}
}

// WithBlockTimeout bounds how long a PolicyBlock enqueue may wait for space
// before failing with ErrTimeout. Zero (the default) means the enqueue waits
// until space frees, the queue closes, or the context is cancelled.
func WithBlockTimeout[T any](d time.Duration) Option[T] {
	return func(q *Queue[T]) {
		if d > 0 {
			q.blockTimeout = d
		}
	}
}

// New creates a queue with the given capacity.
// Panics if capacity is less than 1.
func New[T any](capacity int, opts ...Option[T]) *Queue[T] {
	if capacity < 1 {
		panic("queue: capacity must be at least 1")
	}

	q := &Queue[T]{
		ch:   make(chan T, capacity),
		done: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Enqueue appends v to the queue, applying the overflow policy when full.
// It returns ErrQueueClosed after Close, ErrQueueFull when a drop-newest
// overflow discarded v, ErrTimeout when a block timeout elapsed, or the
// context error when ctx was cancelled while waiting.
func (q *Queue[T]) Enqueue(ctx context.Context, v T) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	switch q.policy {
	case PolicyDropNewest:
		select {
		case q.ch <- v:
			q.enqueued.Add(1)
			return nil
		default:
			q.dropped.Add(1)
			return ErrQueueFull
		}

	case PolicyDropOldest:
		for {
			select {
			case <-q.done:
				return ErrQueueClosed
			case q.ch <- v:
				q.enqueued.Add(1)
				return nil
			default:
			}

			// Full: evict the head and retry. A concurrent dequeue may beat
			// the eviction, which only means space freed another way.
			select {
			case <-q.ch:
				q.evicted.Add(1)
			default:
			}
		}

	default: // PolicyBlock
		var timeout <-chan time.Time
		if q.blockTimeout > 0 {
			t := time.NewTimer(q.blockTimeout)
			defer t.Stop()
			timeout = t.C
		}

		select {
		case q.ch <- v:
			q.enqueued.Add(1)
			return nil
		case <-q.done:
			return ErrQueueClosed
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			q.dropped.Add(1)
			return ErrTimeout
		}
	}
}

// Dequeue removes and returns the oldest item, blocking while the queue is
// empty. After Close it keeps draining buffered items and then returns
// ErrQueueClosed permanently. A cancelled wait returns the context error.
func (q *Queue[T]) Dequeue(ctx context.Context) (T, error) {
	var zero T

	// Fast path: buffered items win over close/cancel signals so that
	// messages accepted before shutdown are never lost.
	select {
	case v := <-q.ch:
		return v, nil
	default:
	}

	select {
	case v := <-q.ch:
		return v, nil
	case <-q.done:
		// Closed while waiting; drain anything that raced in.
		select {
		case v := <-q.ch:
			return v, nil
		default:
			return zero, ErrQueueClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TryDequeue removes and returns the oldest item without blocking.
// The boolean reports whether an item was returned. An empty open queue
// returns (zero, false, nil); a closed and drained queue returns
// (zero, false, ErrQueueClosed).
func (q *Queue[T]) TryDequeue() (T, bool, error) {
	var zero T

	select {
	case v := <-q.ch:
		return v, true, nil
	default:
	}

	if q.closed.Load() {
		// Re-check: an item may have landed between the drain attempt and
		// the closed check.
		select {
		case v := <-q.ch:
			return v, true, nil
		default:
			return zero, false, ErrQueueClosed
		}
	}

	return zero, false, nil
}

// Close marks the queue closed. Further enqueues fail with ErrQueueClosed;
// buffered items remain drainable. Closing an already closed queue returns
// ErrQueueClosed.
func (q *Queue[T]) Close() error {
	if q.closed.CompareAndSwap(false, true) {
		close(q.done)
		return nil
	}
	return ErrQueueClosed
}

// IsClosed reports whether Close has been called.
func (q *Queue[T]) IsClosed() bool {
	return q.closed.Load()
}

// Len returns the number of items currently buffered.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the configured capacity.
func (q *Queue[T]) Cap() int {
	return cap(q.ch)
}

// Policy returns the overflow policy the queue was built with.
func (q *Queue[T]) Policy() Policy {
	return q.policy
}

// Stats returns current queue statistics for observability and monitoring.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		Len:      len(q.ch),
		Cap:      cap(q.ch),
		Enqueued: q.enqueued.Load(),
		Dropped:  q.dropped.Load(),
		Evicted:  q.evicted.Load(),
		Closed:   q.closed.Load(),
	}
}
