package pubsub

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DeliveryStatus classifies what happened to one subscriber during fan-out.
type DeliveryStatus string

const (
	// StatusDelivered means the message was enqueued to the subscriber.
	StatusDelivered DeliveryStatus = "delivered"
	// StatusDropped means the subscriber's queue was full under the
	// drop-newest policy and the message was discarded for it.
	StatusDropped DeliveryStatus = "dropped"
	// StatusTimedOut means a blocking enqueue exceeded its timeout.
	StatusTimedOut DeliveryStatus = "timed_out"
	// StatusClosed means the subscriber's queue was already closed.
	StatusClosed DeliveryStatus = "closed"
	// StatusFailed means the enqueue failed for another reason, typically
	// publish-context cancellation.
	StatusFailed DeliveryStatus = "failed"
)

// Delivery is the per-subscriber result of one publish.
type Delivery struct {
	SubscriptionID    uuid.UUID      // Subscriber the result belongs to
	SubscriptionTopic string         // Topic or pattern that subscription holds
	Status            DeliveryStatus // What happened to this subscriber
	Err               error          // Non-nil for every status except delivered
}

// Delivered reports whether the message reached this subscriber's queue.
func (d Delivery) Delivered() bool {
	return d.Status == StatusDelivered
}

// Outcome summarizes a single publish across all snapshotted subscribers.
// A publish to a topic with no subscribers yields an empty Outcome.
type Outcome struct {
	MessageID  uuid.UUID  // Identifier assigned to the published message
	Topic      string     // Topic the publish targeted
	Deliveries []Delivery // One entry per snapshotted subscriber
}

// Empty reports whether the publish reached no subscribers at all.
func (o Outcome) Empty() bool {
	return len(o.Deliveries) == 0
}

// Delivered returns the number of subscribers the message was enqueued to.
func (o Outcome) Delivered() int {
	return o.count(StatusDelivered)
}

// Dropped returns the number of subscribers that lost the message to
// overflow, including blocking enqueues that timed out.
func (o Outcome) Dropped() int {
	return o.count(StatusDropped) + o.count(StatusTimedOut)
}

// Failed returns the number of subscribers whose enqueue failed outright
// (closed queue or cancelled publish context).
func (o Outcome) Failed() int {
	return o.count(StatusClosed) + o.count(StatusFailed)
}

// Err aggregates every per-subscriber failure into a single error, or nil
// when the message was enqueued everywhere. Per-subscriber failures never
// abort a publish; this is a convenience for callers that treat any
// incomplete fan-out as reportable.
func (o Outcome) Err() error {
	var errs []error
	for _, d := range o.Deliveries {
		if d.Err != nil {
			errs = append(errs, fmt.Errorf("subscription %s: %w", d.SubscriptionID, d.Err))
		}
	}
	return errors.Join(errs...)
}

func (o Outcome) count(status DeliveryStatus) int {
	n := 0
	for _, d := range o.Deliveries {
		if d.Status == status {
			n++
		}
	}
	return n
}
