package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/pubsub/core/queue"
)

// RemotePublisher is the outbound half of a transport adapter: wire encoding,
// connection management and peer discovery all live behind it, outside this
// core. Forward uses it to push locally published messages out.
type RemotePublisher interface {
	// RemotePublish sends a serialized message for topic to remote peers.
	RemotePublish(ctx context.Context, topic string, payload []byte) error
}

// Codec translates between application payloads and the serialized form a
// transport carries. The core is agnostic to the format.
type Codec[T any] interface {
	Marshal(v T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// JSONCodec is a Codec backed by encoding/json.
type JSONCodec[T any] struct{}

// Marshal implements Codec.
func (JSONCodec[T]) Marshal(v T) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements Codec.
func (JSONCodec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Deliver feeds a serialized message received from a transport into the local
// publish path, returning the local fan-out outcome. It is the inbound half
// of the transport boundary.
func (b *Broker[T]) Deliver(ctx context.Context, topic string, payload []byte, codec Codec[T]) (Outcome, error) {
	if codec == nil {
		codec = JSONCodec[T]{}
	}

	data, err := codec.Unmarshal(payload)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to decode remote message for topic %q: %w", topic, err)
	}

	return b.Publish(ctx, topic, data)
}

// Forward drains a local subscription and pushes every message to a remote
// publisher until the subscription is retired or ctx is cancelled. A retired
// subscription ends the forward with a nil error; encoding and transport
// failures end it with the failure.
func Forward[T any](ctx context.Context, sub *Subscription[T], codec Codec[T], remote RemotePublisher) error {
	if codec == nil {
		codec = JSONCodec[T]{}
	}

	for {
		msg, err := sub.Receive(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrQueueClosed) {
				return nil
			}
			return err
		}

		payload, err := codec.Marshal(msg.Data)
		if err != nil {
			return fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
		}

		if err := remote.RemotePublish(ctx, msg.Topic, payload); err != nil {
			return fmt.Errorf("remote publish for topic %q failed: %w", msg.Topic, err)
		}
	}
}
