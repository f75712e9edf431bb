package queue

import "errors"

var (
	// ErrQueueClosed is returned by Enqueue after Close, and by Dequeue once
	// the queue is closed and all buffered items have been drained.
	ErrQueueClosed = errors.New("queue is closed")

	// ErrQueueFull is returned by Enqueue under PolicyDropNewest when the
	// queue is at capacity and the incoming item was discarded.
	ErrQueueFull = errors.New("queue is full")

	// ErrTimeout is returned by Enqueue under PolicyBlock when the queue
	// stayed full for the configured block timeout.
	ErrTimeout = errors.New("enqueue timed out")
)
