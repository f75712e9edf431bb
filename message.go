package pubsub

import (
	"time"

	"github.com/google/uuid"
)

// Message is a published payload together with its dispatch metadata.
// The Topic field carries the topic the publish targeted, which for a
// wildcard subscription is the concrete topic that matched the pattern.
type Message[T any] struct {
	ID          uuid.UUID `json:"id"`           // Unique identifier for the message
	Topic       string    `json:"topic"`        // Topic the message was published to
	Data        T         `json:"data"`         // Application payload, opaque to the core
	PublishedAt time.Time `json:"published_at"` // When the message entered the dispatcher
}

func newMessage[T any](topic string, data T) Message[T] {
	return Message[T]{
		ID:          uuid.New(),
		Topic:       topic,
		Data:        data,
		PublishedAt: time.Now(),
	}
}
