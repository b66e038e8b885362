package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEventType discriminates domain events. Subscribers are keyed by it.
type DomainEventType string

// Event aggregate lifecycle events.
const (
	// EventCreated records the creation of an event.
	EventCreated DomainEventType = "EventCreated"
	// EventUpdated records a change to one or more event details.
	EventUpdated DomainEventType = "EventUpdated"
	// EventPublished records an event becoming visible in the public catalog.
	EventPublished DomainEventType = "EventPublished"
	// EventCancelled records a published event being withdrawn.
	EventCancelled DomainEventType = "EventCancelled"
)

// DomainEventVersion is the payload schema version stamped on every domain event.
const DomainEventVersion = 1

// DomainEvent is an immutable record of something that happened to an Event aggregate.
type DomainEvent struct {
	// ID identifies this occurrence.
	ID string
	// AggregateID is the Event the occurrence concerns.
	AggregateID EventID
	// OccurredOn is when the aggregate recorded the change.
	OccurredOn time.Time
	// Type selects the payload shape.
	Type DomainEventType
	// Version is the payload schema version.
	Version int
	// Payload holds one of the *Payload types below.
	Payload Payload
}

// Payload is implemented by the event-specific data types of this package only.
type Payload interface {
	payloadType() DomainEventType
}

// EventCreatedPayload carries the full state of a new event.
type EventCreatedPayload struct {
	Event EventSnapshot
}

// EventUpdatedPayload carries the full post-update state and the names of changed fields.
type EventUpdatedPayload struct {
	Event   EventSnapshot
	Changes []string
}

// EventPublishedPayload is what external subscribers need to announce a publication.
type EventPublishedPayload struct {
	EventID     EventID
	OrganizerID OrganizerID
	EventName   string
}

// EventCancelledPayload identifies a withdrawn event and why it was withdrawn.
type EventCancelledPayload struct {
	EventID     EventID
	OrganizerID OrganizerID
	EventName   string
	Reason      string
}

func (EventCreatedPayload) payloadType() DomainEventType   { return EventCreated }
func (EventUpdatedPayload) payloadType() DomainEventType   { return EventUpdated }
func (EventPublishedPayload) payloadType() DomainEventType { return EventPublished }
func (EventCancelledPayload) payloadType() DomainEventType { return EventCancelled }

// NewDomainEvent wraps payload in an envelope with a fresh occurrence id.
func NewDomainEvent(aggregateID EventID, payload Payload, occurredOn time.Time) DomainEvent {
	return DomainEvent{
		ID:          uuid.NewString(),
		AggregateID: aggregateID,
		OccurredOn:  occurredOn,
		Type:        payload.payloadType(),
		Version:     DomainEventVersion,
		Payload:     payload,
	}
}

// DomainEventHandler reacts to a published domain event.
type DomainEventHandler func(ctx context.Context, evt DomainEvent) error

// DomainEventPublisher fans domain events out to subscribers. Publish never reports
// subscriber failures to its caller.
type DomainEventPublisher interface {
	Subscribe(eventType DomainEventType, handler DomainEventHandler)
	Publish(ctx context.Context, evt DomainEvent)
	PublishAll(ctx context.Context, evts []DomainEvent)
}
