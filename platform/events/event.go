// Package events defines the event contract and in-memory bus the domain
// modules communicate over. Publishers never see their subscribers; the
// picking module announces what happened and the notification side decides
// what to do with it.
package events

import (
	"context"
	"time"
)

// Event is anything that can travel over the bus. The name keys the
// subscription table, the timestamp records when it happened.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp so concrete events only add their payload.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events of one name.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe without a wrapper type.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes published events to the handlers subscribed to their name.
type Bus interface {
	// Publish delivers the event to its subscribers asynchronously. A
	// handler failure is logged, never returned to the publisher.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event and waits for every handler, returning
	// the first handler error. Used where the caller needs delivery
	// confirmation, and by tests.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an event name. The name must
	// match what the event's EventName returns.
	Subscribe(eventName string, handler Handler)
}
