package pubsub_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubsub"
)

func TestNewPublisher(t *testing.T) {
	t.Parallel()

	t.Run("binds to a topic", func(t *testing.T) {
		t.Parallel()

		broker := pubsub.New[string]()
		defer broker.Close()

		pub, err := pubsub.NewPublisher(broker, "alerts")
		require.NoError(t, err)
		assert.Equal(t, "alerts", pub.Topic())
	})

	t.Run("rejects empty topic", func(t *testing.T) {
		t.Parallel()

		broker := pubsub.New[string]()
		defer broker.Close()

		_, err := pubsub.NewPublisher(broker, "")
		require.ErrorIs(t, err, pubsub.ErrEmptyTopic)
	})

	t.Run("rejects pattern topic", func(t *testing.T) {
		t.Parallel()

		broker := pubsub.New[string]()
		defer broker.Close()

		_, err := pubsub.NewPublisher(broker, "alerts.*")
		require.ErrorIs(t, err, pubsub.ErrPatternPublish)
	})
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	t.Run("dispatches through the broker", func(t *testing.T) {
		t.Parallel()

		broker := pubsub.New[string]()
		defer broker.Close()

		ctx := context.Background()
		sub, err := broker.Subscribe(ctx, "alerts")
		require.NoError(t, err)

		pub, err := pubsub.NewPublisher(broker, "alerts")
		require.NoError(t, err)

		outcome, err := pub.Publish(ctx, "cpu high")
		require.NoError(t, err)
		require.Equal(t, 1, outcome.Delivered())

		msg, err := sub.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "cpu high", msg.Data)
		assert.Equal(t, "alerts", msg.Topic)
	})

	t.Run("sequential publishes preserve order per subscriber", func(t *testing.T) {
		t.Parallel()

		broker := pubsub.New[int]()
		defer broker.Close()

		ctx := context.Background()
		sub, err := broker.Subscribe(ctx, "seq", pubsub.WithCapacity(10))
		require.NoError(t, err)

		pub, err := pubsub.NewPublisher(broker, "seq")
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			_, err := pub.Publish(ctx, i)
			require.NoError(t, err)
		}

		for i := 0; i < 10; i++ {
			msg, err := sub.Receive(ctx)
			require.NoError(t, err)
			require.Equal(t, i, msg.Data)
		}
	})

	t.Run("fails after broker close", func(t *testing.T) {
		t.Parallel()

		broker := pubsub.New[string]()
		pub, err := pubsub.NewPublisher(broker, "alerts")
		require.NoError(t, err)

		require.NoError(t, broker.Close())

		_, err = pub.Publish(context.Background(), "m")
		require.ErrorIs(t, err, pubsub.ErrBrokerClosed)
	})
}
