package pubsub

import (
	"context"
)

// Publisher is a stateless façade binding a broker to a single topic.
// It adds input validation and nothing else; all dispatch logic lives in the
// broker.
//
// Example:
//
//	pub, err := pubsub.NewPublisher(broker, "alerts")
//	if err != nil {
//		return err
//	}
//	outcome, err := pub.Publish(ctx, "disk almost full")
type Publisher[T any] struct {
	broker *Broker[T]
	topic  string
}

// NewPublisher creates a publisher for topic. The topic must be a concrete
// identifier: publishing targets exact topics, never wildcard patterns.
func NewPublisher[T any](b *Broker[T], topic string) (*Publisher[T], error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if isPattern(topic) {
		return nil, ErrPatternPublish
	}

	return &Publisher[T]{
		broker: b,
		topic:  topic,
	}, nil
}

// Topic returns the topic the publisher is bound to.
func (p *Publisher[T]) Topic() string {
	return p.topic
}

// Publish dispatches data to every current subscriber of the bound topic.
// See Broker.Publish for outcome and error semantics.
func (p *Publisher[T]) Publish(ctx context.Context, data T) (Outcome, error) {
	return p.broker.Publish(ctx, p.topic, data)
}
