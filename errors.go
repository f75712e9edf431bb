package pubsub

import "errors"

var (
	// ErrEmptyTopic is returned when a topic identifier is empty.
	ErrEmptyTopic = errors.New("topic must not be empty")

	// ErrBrokerClosed is returned by Subscribe and Publish after the broker
	// has been closed.
	ErrBrokerClosed = errors.New("broker is closed")

	// ErrPatternPublish is returned when publishing to a topic containing
	// wildcard characters. Patterns are subscription-side only.
	ErrPatternPublish = errors.New("cannot publish to a pattern topic")

	// ErrSubscriptionNotFound is returned by Broker.Unsubscribe for a handle
	// that never belonged to this broker. A repeated unsubscribe of a
	// previously valid handle is a no-op, not this error.
	ErrSubscriptionNotFound = errors.New("subscription does not belong to this broker")

	// ErrHealthcheckFailed indicates the broker failed its health check.
	ErrHealthcheckFailed = errors.New("healthcheck failed")
)
