package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/logger"
)

// ConsumerName scopes idempotency markers for this worker.
const ConsumerName = "dispatch-worker"

type subscriber interface {
	Receive(ctx context.Context, f func(context.Context, *pubsub.Message)) error
}

type assigner interface {
	Assign(ctx context.Context, orderID uuid.UUID)
}

type idempotencyGuard interface {
	CheckAndMarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error)
}

// Consumer pulls order events off Pub/Sub and triggers dispatch runs.
type Consumer struct {
	sub   subscriber
	guard idempotencyGuard
	orch  assigner
	logg  *logger.Logger
}

// NewConsumer wires the subscription into the orchestrator.
func NewConsumer(sub subscriber, guard idempotencyGuard, orch assigner, logg *logger.Logger) (*Consumer, error) {
	switch {
	case sub == nil:
		return nil, fmt.Errorf("subscriber required")
	case guard == nil:
		return nil, fmt.Errorf("idempotency guard required")
	case orch == nil:
		return nil, fmt.Errorf("orchestrator required")
	case logg == nil:
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{sub: sub, guard: guard, orch: orch, logg: logg}, nil
}

// Run blocks on the subscription until ctx is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	c.logg.Info(ctx, "dispatch consumer started")
	return c.sub.Receive(ctx, c.handle)
}

// handle processes one message. Dispatch is a best-effort side channel, so
// the message is acked regardless of the assignment outcome; only a failed
// idempotency mark leaves the event for redelivery.
func (c *Consumer) handle(ctx context.Context, msg *pubsub.Message) {
	var event OrderEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logg.Error(ctx, "dropping undecodable order event", err)
		msg.Ack()
		return
	}

	ctx = c.logg.WithFields(ctx, map[string]any{
		"event_id":   event.EventID.String(),
		"event_type": event.Type,
	})

	if event.Type != enums.EventOrderReadyForDispatch {
		c.logg.Debug(ctx, "ignoring unrelated event type")
		msg.Ack()
		return
	}
	if event.EventID == uuid.Nil || event.OrderID == uuid.Nil {
		c.logg.Warn(ctx, "dropping order event with missing ids")
		msg.Ack()
		return
	}

	processed, err := c.guard.CheckAndMarkProcessed(ctx, ConsumerName, event.EventID)
	if err != nil {
		c.logg.Error(ctx, "idempotency check failed, leaving event for redelivery", err)
		msg.Nack()
		return
	}
	if processed {
		c.logg.Debug(ctx, "event already processed, skipping")
		msg.Ack()
		return
	}

	c.orch.Assign(ctx, event.OrderID)
	msg.Ack()
}
