// Package queue provides a bounded, generic delivery queue with configurable
// overflow behavior, designed for single-producer-side/single-consumer-side
// use between a message dispatcher and a subscriber.
//
// # Overflow Policies
//
// Each queue is constructed with a fixed capacity and one of three policies
// that decide what happens when an enqueue finds the queue full:
//
//   - PolicyBlock: the enqueue waits until space frees, the queue closes, the
//     context is cancelled, or an optional per-queue timeout elapses.
//   - PolicyDropNewest: the incoming item is discarded and ErrQueueFull is
//     returned; the queue contents are untouched.
//   - PolicyDropOldest: the oldest unread item is evicted to make room for
//     the incoming one; the enqueue itself never fails with ErrQueueFull.
//
// # Usage
//
//	q := queue.New[string](64, queue.WithPolicy[string](queue.PolicyDropOldest))
//	defer q.Close()
//
//	if err := q.Enqueue(ctx, "hello"); err != nil {
//		// queue closed or context cancelled
//	}
//
//	msg, err := q.Dequeue(ctx)
//
// # Close Semantics
//
// Close is monotonic: a closed queue never reopens. After Close, Enqueue
// returns ErrQueueClosed immediately, while Dequeue continues to drain any
// buffered items and only then returns ErrQueueClosed permanently. This lets
// a consumer observe every message accepted before shutdown.
//
// # Concurrency
//
// All methods are safe for concurrent use. Cancelled or timed-out operations
// leave the queue consistent: a failed Enqueue never partially inserts and a
// failed Dequeue never partially removes.
package queue
