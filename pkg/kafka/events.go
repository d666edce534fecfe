package kafka

import (
	"context"

	"budgetly/pkg/logger"
)

const (
	EventBudgetStored  = "budget.stored"
	EventBudgetDeleted = "budget.deleted"
	EventTagStored     = "tag.stored"
	EventTagDeleted    = "tag.deleted"
)

// CorrelationFunc extracts a correlation ID, typically the request ID, from ctx.
type CorrelationFunc func(ctx context.Context) string

// Emitter publishes domain events on a best-effort basis: a failed publish is
// logged and never fails the operation that produced the event.
type Emitter struct {
	publisher   Publisher
	source      string
	correlation CorrelationFunc
	log         *logger.Logger
}

func NewEmitter(publisher Publisher, source string, correlation CorrelationFunc, log *logger.Logger) *Emitter {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if correlation == nil {
		correlation = func(context.Context) string { return "" }
	}
	return &Emitter{
		publisher:   publisher,
		source:      source,
		correlation: correlation,
		log:         log,
	}
}

func (e *Emitter) Emit(ctx context.Context, eventType, key string, payload any) {
	msg, err := NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(e.source).
		WithCorrelationID(e.correlation(ctx)).
		Build()
	if err != nil {
		e.log.Error("Failed to build event", "event_type", eventType, "key", key, "error", err)
		return
	}

	if err := e.publisher.Publish(ctx, msg); err != nil {
		e.log.Error("Failed to publish event",
			"event_type", eventType,
			"key", key,
			"event_id", msg.EventID(),
			"error", err,
		)
		return
	}

	e.log.Debug("Event published", "event_type", eventType, "key", key, "event_id", msg.EventID())
}
