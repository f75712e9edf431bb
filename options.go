package pubsub

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/pubsub/core/queue"
)

// Option configures a Broker.
type Option[T any] func(*Broker[T])

// WithLogger configures structured logging for broker operations.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(b *Broker[T]) {
		if log != nil {
			b.logger = log
		}
	}
}

// WithDefaultCapacity sets the delivery-queue capacity used by subscriptions
// that do not override it. Default is DefaultQueueCapacity.
func WithDefaultCapacity[T any](capacity int) Option[T] {
	return func(b *Broker[T]) {
		if capacity > 0 {
			b.capacity = capacity
		}
	}
}

// WithDefaultPolicy sets the overflow policy used by subscriptions that do
// not override it. Default is queue.PolicyDropNewest, so a slow subscriber
// loses its own messages instead of stalling publishers.
func WithDefaultPolicy[T any](p queue.Policy) Option[T] {
	return func(b *Broker[T]) {
		b.policy = p
	}
}

// WithDefaultBlockTimeout bounds how long a queue.PolicyBlock enqueue may
// wait during fan-out before it counts as dropped. Zero (default) means such
// enqueues wait until the publish context is cancelled.
func WithDefaultBlockTimeout[T any](d time.Duration) Option[T] {
	return func(b *Broker[T]) {
		if d > 0 {
			b.blockTimeout = d
		}
	}
}

// WithConfig applies an environment-derived Config. Invalid values are
// ignored in favor of the existing defaults.
func WithConfig[T any](cfg Config) Option[T] {
	return func(b *Broker[T]) {
		if cfg.QueueCapacity > 0 {
			b.capacity = cfg.QueueCapacity
		}
		if p, ok := queue.ParsePolicy(cfg.OverflowPolicy); ok {
			b.policy = p
		}
		if cfg.BlockTimeout > 0 {
			b.blockTimeout = cfg.BlockTimeout
		}
	}
}

// subscribeOptions carries per-subscription overrides of broker defaults.
type subscribeOptions struct {
	capacity     int
	policy       queue.Policy
	blockTimeout time.Duration
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*subscribeOptions)

// WithCapacity overrides the delivery-queue capacity for this subscription.
func WithCapacity(capacity int) SubscribeOption {
	return func(o *subscribeOptions) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// WithPolicy overrides the overflow policy for this subscription.
func WithPolicy(p queue.Policy) SubscribeOption {
	return func(o *subscribeOptions) {
		o.policy = p
	}
}

// WithBlockTimeout overrides the blocking-enqueue timeout for this
// subscription. Only meaningful together with queue.PolicyBlock.
func WithBlockTimeout(d time.Duration) SubscribeOption {
	return func(o *subscribeOptions) {
		if d > 0 {
			o.blockTimeout = d
		}
	}
}
