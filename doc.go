// Package pubsub provides a thread-safe, in-process publish-subscribe
// messaging core: named topics, independent subscribers with bounded
// per-subscription delivery queues, and a dispatcher that fans published
// messages out to every current subscriber of a topic.
//
// # Core Components
//
// Broker owns the topic registry and the dispatch path. It is instance-scoped:
// create one with New, share it between publishers and subscribers, and Close
// it to tear every subscription down.
//
// Subscription is the live relationship between one subscriber and one topic.
// Each subscription owns a bounded delivery queue (core/queue) with its own
// overflow policy, so one slow subscriber never affects another.
//
// Publisher is a thin façade binding a broker to a single topic.
//
// Outcome summarizes a publish per subscriber: delivered, dropped on
// overflow, timed out, or rejected because the subscription closed. Publishing
// to a topic with no subscribers is not an error; it yields an empty Outcome.
//
// # Basic Usage
//
//	broker := pubsub.New[string]()
//	defer broker.Close()
//
//	sub, err := broker.Subscribe(ctx, "alerts",
//		pubsub.WithCapacity(64),
//		pubsub.WithPolicy(queue.PolicyDropOldest),
//	)
//	if err != nil {
//		return err
//	}
//	defer sub.Unsubscribe()
//
//	go func() {
//		for {
//			msg, err := sub.Receive(ctx)
//			if err != nil {
//				return // queue closed or ctx cancelled
//			}
//			handle(msg.Data)
//		}
//	}()
//
//	outcome, err := broker.Publish(ctx, "alerts", "disk almost full")
//
// # Wildcard Subscriptions
//
// A topic containing '*' or '?' subscribes to a pattern rather than a single
// topic: '*' matches any run of characters and '?' exactly one. A publish to
// "metrics.cpu" reaches subscribers of "metrics.cpu" and of every matching
// pattern such as "metrics.*". Publishing to a pattern itself is rejected.
//
// # Lifecycle
//
// Subscribe takes a context; cancelling it unsubscribes automatically, so a
// subscription cannot leak past the scope that created it. Unsubscribe is
// idempotent, and a broker Close closes every outstanding subscription:
// subscribers drain what was already delivered, then see a terminal
// queue-closed error from Receive.
//
// # Ordering
//
// Messages published sequentially by one publisher to one topic are observed
// in that order by every subscriber that stays subscribed across both
// publishes (subject to its own overflow policy). No ordering is guaranteed
// between concurrent publishers or across topics.
package pubsub
