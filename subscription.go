package pubsub

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pubsub/core/queue"
)

func newSubscriptionID() uuid.UUID {
	return uuid.New()
}

// Subscription is the live relationship between one subscriber and one topic.
// It exclusively owns its delivery queue: the dispatcher enqueues into it
// during fan-out and the subscriber drains it through Receive.
//
// A subscription is retired exactly once, by whichever comes first of an
// explicit Unsubscribe, the subscribe context being cancelled, or the broker
// closing. All paths are idempotent.
type Subscription[T any] struct {
	id      uuid.UUID
	topic   string
	pattern bool
	queue   *queue.Queue[Message[T]]
	broker  *Broker[T]

	once sync.Once
	done chan struct{}
}

// ID returns the unique identifier of the subscription.
func (s *Subscription[T]) ID() uuid.UUID {
	return s.id
}

// Topic returns the topic identifier or wildcard pattern subscribed to.
func (s *Subscription[T]) Topic() string {
	return s.topic
}

// IsPattern reports whether the subscription is a wildcard subscription.
func (s *Subscription[T]) IsPattern() bool {
	return s.pattern
}

// Receive blocks until a message is available and returns it.
// After the subscription is retired, it keeps returning buffered messages
// until the queue is drained and then fails with queue.ErrQueueClosed
// permanently. A cancelled wait returns the context error.
func (s *Subscription[T]) Receive(ctx context.Context) (Message[T], error) {
	return s.queue.Dequeue(ctx)
}

// TryReceive returns the next message without blocking. The boolean reports
// whether a message was returned; an empty live subscription yields
// (zero, false, nil) and a retired, drained one (zero, false, queue.ErrQueueClosed).
func (s *Subscription[T]) TryReceive() (Message[T], bool, error) {
	return s.queue.TryDequeue()
}

// Pending returns the number of undelivered messages in the queue.
func (s *Subscription[T]) Pending() int {
	return s.queue.Len()
}

// QueueStats returns delivery-queue counters for observability.
func (s *Subscription[T]) QueueStats() queue.Stats {
	return s.queue.Stats()
}

// Unsubscribe removes the subscription from the broker and closes its queue.
// Buffered messages remain receivable until drained. Calling Unsubscribe more
// than once, or after the subscribe context was cancelled, is a no-op.
func (s *Subscription[T]) Unsubscribe() error {
	s.retire(true)
	return nil
}

// retire tears the subscription down exactly once. The broker's Close path
// passes detach=false because it empties the registry itself.
func (s *Subscription[T]) retire(detach bool) {
	s.once.Do(func() {
		if detach {
			s.broker.detach(s)
		}
		_ = s.queue.Close()
		close(s.done)
		s.broker.subscriptionRetired(s)
	})
}
