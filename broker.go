package pubsub

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/pubsub/core/logger"
	"github.com/dmitrymomot/pubsub/core/queue"
)

// DefaultQueueCapacity is the delivery-queue capacity used when neither the
// broker nor the subscribe call overrides it.
const DefaultQueueCapacity = 100

// Broker is an instance-scoped topic registry and message dispatcher.
// It starts empty; Close retires every subscription and is terminal.
//
// The registry is optimized for the publish path: topic lookup takes a short
// read lock, membership snapshots take a short per-topic read lock, and
// fan-out enqueues run without any registry lock held. Subscribe and
// unsubscribe serialize on the registry write lock. Operations on different
// topics only share the brief registry lookup.
type Broker[T any] struct {
	mu       sync.RWMutex
	topics   map[string]*topicEntry[T]
	patterns map[string]*topicEntry[T]
	closed   bool

	logger       *slog.Logger
	capacity     int
	policy       queue.Policy
	blockTimeout time.Duration

	published  atomic.Int64
	delivered  atomic.Int64
	dropped    atomic.Int64
	activeSubs atomic.Int64
}

// BrokerStats provides observability metrics for monitoring and debugging.
type BrokerStats struct {
	Published           int64 // Publish calls accepted
	Delivered           int64 // Successful per-subscriber enqueues
	Dropped             int64 // Per-subscriber messages lost to overflow or timeout
	ActiveSubscriptions int64 // Currently live subscriptions
	Topics              int   // Exact-topic entries with at least one subscriber
	Patterns            int   // Pattern entries with at least one subscriber
	Closed              bool  // Whether the broker has been closed
}

// New creates an empty broker.
//
// Example:
//
//	broker := pubsub.New[Alert](
//		pubsub.WithDefaultCapacity[Alert](64),
//		pubsub.WithDefaultPolicy[Alert](queue.PolicyDropOldest),
//		pubsub.WithLogger[Alert](log),
//	)
//	defer broker.Close()
func New[T any](opts ...Option[T]) *Broker[T] {
	b := &Broker[T]{
		topics:   make(map[string]*topicEntry[T]),
		patterns: make(map[string]*topicEntry[T]),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		capacity: DefaultQueueCapacity,
		policy:   queue.PolicyDropNewest,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Subscribe registers a new subscription for topic, creating the topic entry
// if absent. A topic containing '*' or '?' registers a wildcard subscription.
// Queue capacity and overflow policy default to the broker configuration and
// can be overridden per call.
//
// Cancelling ctx unsubscribes automatically, so the subscription cannot
// outlive the scope that created it. Use context.Background() for
// subscriptions managed purely by explicit Unsubscribe.
func (b *Broker[T]) Subscribe(ctx context.Context, topic string, opts ...SubscribeOption) (*Subscription[T], error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := subscribeOptions{
		capacity:     b.capacity,
		policy:       b.policy,
		blockTimeout: b.blockTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	qopts := []queue.Option[Message[T]]{queue.WithPolicy[Message[T]](cfg.policy)}
	if cfg.blockTimeout > 0 {
		qopts = append(qopts, queue.WithBlockTimeout[Message[T]](cfg.blockTimeout))
	}

	sub := &Subscription[T]{
		id:      newSubscriptionID(),
		topic:   topic,
		pattern: isPattern(topic),
		queue:   queue.New[Message[T]](cfg.capacity, qopts...),
		broker:  b,
		done:    make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBrokerClosed
	}
	b.entryFor(sub).add(sub)
	b.mu.Unlock()

	b.activeSubs.Add(1)

	// Scoped-resource semantics: the watcher retires the subscription on
	// context cancellation and exits as soon as the subscription does.
	if done := ctx.Done(); done != nil {
		go func() {
			select {
			case <-done:
				_ = sub.Unsubscribe()
			case <-sub.done:
			}
		}()
	}

	b.logger.DebugContext(ctx, "subscribed",
		logger.Topic(topic),
		logger.Subscription(sub.id.String()),
		logger.Capacity(cfg.capacity),
		logger.Policy(cfg.policy.String()),
	)

	return sub, nil
}

// entryFor returns the registry entry a subscription belongs to, creating it
// if absent. Idempotent. Caller must hold b.mu.
func (b *Broker[T]) entryFor(sub *Subscription[T]) *topicEntry[T] {
	m := b.topics
	if sub.pattern {
		m = b.patterns
	}

	entry, ok := m[sub.topic]
	if !ok {
		entry = newTopicEntry[T](sub.topic)
		m[sub.topic] = entry
	}
	return entry
}

// Publish dispatches data to every current subscriber of topic: subscribers
// of the exact topic plus subscribers of every matching wildcard pattern.
// Fan-out is independent per subscriber; one full or closed queue never
// affects delivery to the others, and per-subscriber failures are collected
// in the Outcome rather than returned as an error.
//
// Publishing to a topic with no subscribers succeeds with an empty Outcome.
func (b *Broker[T]) Publish(ctx context.Context, topic string, data T) (Outcome, error) {
	if topic == "" {
		return Outcome{}, ErrEmptyTopic
	}
	if isPattern(topic) {
		return Outcome{}, ErrPatternPublish
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return Outcome{}, ErrBrokerClosed
	}
	entries := make([]*topicEntry[T], 0, 1)
	if entry, ok := b.topics[topic]; ok {
		entries = append(entries, entry)
	}
	for pattern, entry := range b.patterns {
		if wildcardMatch(pattern, topic) {
			entries = append(entries, entry)
		}
	}
	b.mu.RUnlock()

	msg := newMessage(topic, data)
	b.published.Add(1)

	outcome := Outcome{MessageID: msg.ID, Topic: topic}
	for _, entry := range entries {
		for _, sub := range entry.snapshot() {
			outcome.Deliveries = append(outcome.Deliveries, b.dispatch(ctx, sub, msg))
		}
	}

	b.logger.DebugContext(ctx, "message dispatched",
		logger.Topic(topic),
		logger.MessageID(msg.ID.String()),
		logger.Subscribers(len(outcome.Deliveries)),
		logger.Count("delivered", outcome.Delivered()),
		logger.Count("dropped", outcome.Dropped()),
	)

	return outcome, nil
}

// dispatch enqueues msg for a single subscriber and classifies the result.
func (b *Broker[T]) dispatch(ctx context.Context, sub *Subscription[T], msg Message[T]) Delivery {
	d := Delivery{
		SubscriptionID:    sub.id,
		SubscriptionTopic: sub.topic,
		Status:            StatusDelivered,
	}

	err := sub.queue.Enqueue(ctx, msg)
	switch {
	case err == nil:
		b.delivered.Add(1)
	case errors.Is(err, queue.ErrQueueFull):
		d.Status, d.Err = StatusDropped, err
		b.dropped.Add(1)
	case errors.Is(err, queue.ErrTimeout):
		d.Status, d.Err = StatusTimedOut, err
		b.dropped.Add(1)
	case errors.Is(err, queue.ErrQueueClosed):
		d.Status, d.Err = StatusClosed, err
	default:
		d.Status, d.Err = StatusFailed, err
	}
	return d
}

// Unsubscribe retires a subscription handle. It is idempotent for handles
// created by this broker and returns ErrSubscriptionNotFound for a handle
// that never belonged to it (programmer misuse, not a race).
func (b *Broker[T]) Unsubscribe(sub *Subscription[T]) error {
	if sub == nil || sub.broker != b {
		return ErrSubscriptionNotFound
	}
	return sub.Unsubscribe()
}

// detach removes a subscription from the registry, dropping its topic entry
// once empty so retired topics do not accumulate.
func (b *Broker[T]) detach(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := b.topics
	if sub.pattern {
		m = b.patterns
	}

	entry, ok := m[sub.topic]
	if !ok {
		return
	}
	entry.remove(sub.id)
	if entry.len() == 0 {
		delete(m, sub.topic)
	}
}

// subscriptionRetired updates counters after a subscription teardown.
func (b *Broker[T]) subscriptionRetired(sub *Subscription[T]) {
	b.activeSubs.Add(-1)
	b.logger.Debug("unsubscribed",
		logger.Topic(sub.topic),
		logger.Subscription(sub.id.String()),
	)
}

// Subscribers returns how many subscriptions a publish to topic would
// currently reach, counting both exact and matching pattern subscriptions.
func (b *Broker[T]) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	if entry, ok := b.topics[topic]; ok {
		n += entry.len()
	}
	for pattern, entry := range b.patterns {
		if wildcardMatch(pattern, topic) {
			n += entry.len()
		}
	}
	return n
}

// Close retires every subscription and marks the broker closed. Subscribers
// can still drain messages delivered before the close; further Subscribe and
// Publish calls fail with ErrBrokerClosed. Closing twice returns
// ErrBrokerClosed.
func (b *Broker[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBrokerClosed
	}
	b.closed = true

	var subs []*Subscription[T]
	for _, entry := range b.topics {
		subs = append(subs, entry.snapshot()...)
	}
	for _, entry := range b.patterns {
		subs = append(subs, entry.snapshot()...)
	}
	b.topics = make(map[string]*topicEntry[T])
	b.patterns = make(map[string]*topicEntry[T])
	b.mu.Unlock()

	for _, sub := range subs {
		sub.retire(false)
	}

	b.logger.Info("broker closed", logger.Count("subscriptions", len(subs)))
	return nil
}

// IsClosed reports whether Close has been called.
func (b *Broker[T]) IsClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// Stats returns current broker statistics for observability and monitoring.
func (b *Broker[T]) Stats() BrokerStats {
	b.mu.RLock()
	topics := len(b.topics)
	patterns := len(b.patterns)
	closed := b.closed
	b.mu.RUnlock()

	return BrokerStats{
		Published:           b.published.Load(),
		Delivered:           b.delivered.Load(),
		Dropped:             b.dropped.Load(),
		ActiveSubscriptions: b.activeSubs.Load(),
		Topics:              topics,
		Patterns:            patterns,
		Closed:              closed,
	}
}

// Healthcheck validates that the broker is operational.
// Returns nil if healthy, or an error describing the health issue.
func (b *Broker[T]) Healthcheck(ctx context.Context) error {
	if b.IsClosed() {
		return errors.Join(ErrHealthcheckFailed, ErrBrokerClosed)
	}
	return nil
}
