package domain

import (
	"context"
	"strings"
	"time"
)

// Names reported in EventUpdatedPayload.Changes.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldLocation    = "location"
	FieldEventType   = "eventType"
	FieldTicketType  = "ticketType"
	FieldTicketPrice = "ticketPrice"
)

// EventDetails are the organizer-editable attributes of an event.
type EventDetails struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Location    Location
	EventType   EventType
	TicketType  TicketType
	TicketPrice *Money
}

// EventSnapshot is a copy of an Event's full state, used for storage and event payloads.
type EventSnapshot struct {
	ID          EventID
	OrganizerID OrganizerID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Location    Location
	EventType   EventType
	TicketType  TicketType
	TicketPrice *Money
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Event is the aggregate root for an organizer's event. All mutations go through its
// methods, which record pending domain events until the repository commits them.
type Event struct {
	id          EventID
	organizerID OrganizerID
	details     EventDetails
	isPublished bool
	createdAt   time.Time
	updatedAt   time.Time
	pending     []DomainEvent
}

// CreateEvent validates details and returns an unpublished event with one pending
// EventCreated.
func CreateEvent(organizerID OrganizerID, details EventDetails, now time.Time) (*Event, error) {
	if strings.TrimSpace(string(organizerID)) == "" {
		return nil, NewValidationError(RuleOrganizerID, "organizer id is required")
	}
	details, err := validateDetails(details, now)
	if err != nil {
		return nil, err
	}
	e := &Event{
		id:          NewEventID(),
		organizerID: organizerID,
		details:     details,
	}
	e.record(EventCreatedPayload{Event: e.Snapshot()}, now)
	return e, nil
}

// RestoreEvent rebuilds an aggregate from stored state. No validation is applied: stored
// events may legitimately have started already.
func RestoreEvent(s EventSnapshot) *Event {
	return &Event{
		id:          s.ID,
		organizerID: s.OrganizerID,
		details: EventDetails{
			Name:        s.Name,
			Description: s.Description,
			StartDate:   s.StartDate,
			EndDate:     s.EndDate,
			Location:    cloneLocation(s.Location),
			EventType:   s.EventType,
			TicketType:  s.TicketType,
			TicketPrice: cloneMoney(s.TicketPrice),
		},
		isPublished: s.IsPublished,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

// Update replaces all details after validating them. It returns the names of the fields
// that changed; when none changed no domain event is recorded.
func (e *Event) Update(details EventDetails, now time.Time) ([]string, error) {
	details, err := validateDetails(details, now)
	if err != nil {
		return nil, err
	}
	changes := diffDetails(e.details, details)
	if len(changes) == 0 {
		return nil, nil
	}
	e.details = details
	e.record(EventUpdatedPayload{Event: e.Snapshot(), Changes: changes}, now)
	return changes, nil
}

// Publish makes the event public. It reports false, and records nothing, when the event
// was already published.
func (e *Event) Publish(now time.Time) bool {
	if e.isPublished {
		return false
	}
	e.isPublished = true
	e.record(EventPublishedPayload{
		EventID:     e.id,
		OrganizerID: e.organizerID,
		EventName:   e.details.Name,
	}, now)
	return true
}

// Cancel withdraws a published event. It reports false, and records nothing, when the
// event is not published.
func (e *Event) Cancel(reason string, now time.Time) bool {
	if !e.isPublished {
		return false
	}
	e.isPublished = false
	e.record(EventCancelledPayload{
		EventID:     e.id,
		OrganizerID: e.organizerID,
		EventName:   e.details.Name,
		Reason:      strings.TrimSpace(reason),
	}, now)
	return true
}

func (e *Event) ID() EventID              { return e.id }
func (e *Event) OrganizerID() OrganizerID { return e.organizerID }
func (e *Event) Name() string             { return e.details.Name }
func (e *Event) IsPublished() bool        { return e.isPublished }
func (e *Event) CreatedAt() time.Time     { return e.createdAt }
func (e *Event) UpdatedAt() time.Time     { return e.updatedAt }

// Details returns a copy of the editable attributes.
func (e *Event) Details() EventDetails {
	d := e.details
	d.Location = cloneLocation(d.Location)
	d.TicketPrice = cloneMoney(d.TicketPrice)
	return d
}

// Snapshot returns a copy of the full state.
func (e *Event) Snapshot() EventSnapshot {
	d := e.Details()
	return EventSnapshot{
		ID:          e.id,
		OrganizerID: e.organizerID,
		Name:        d.Name,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Location:    d.Location,
		EventType:   d.EventType,
		TicketType:  d.TicketType,
		TicketPrice: d.TicketPrice,
		IsPublished: e.isPublished,
		CreatedAt:   e.createdAt,
		UpdatedAt:   e.updatedAt,
	}
}

// SetTimestamps records the store-maintained timestamps after a successful persist.
func (e *Event) SetTimestamps(createdAt, updatedAt time.Time) {
	e.createdAt = createdAt
	e.updatedAt = updatedAt
}

// PendingEvents returns the recorded, not yet committed domain events in order.
func (e *Event) PendingEvents() []DomainEvent {
	out := make([]DomainEvent, len(e.pending))
	copy(out, e.pending)
	return out
}

// EventsToCommit reconciles the pending events with the store's view of the aggregate.
// existed tells whether the store already had a row for this id. A new row must be
// announced with EventCreated, so one is synthesized from the current state for
// aggregates that were restored rather than created. Creating over an existing row is
// refused with ErrEventExists.
func (e *Event) EventsToCommit(existed bool, now time.Time) ([]DomainEvent, error) {
	pending := e.PendingEvents()
	created := false
	for _, evt := range pending {
		if evt.Type == EventCreated {
			created = true
			break
		}
	}
	switch {
	case existed && created:
		return nil, ErrEventExists
	case !existed && !created:
		evt := NewDomainEvent(e.id, EventCreatedPayload{Event: e.Snapshot()}, now)
		return append([]DomainEvent{evt}, pending...), nil
	}
	return pending, nil
}

// MarkCommitted drops the pending events once they are persisted.
func (e *Event) MarkCommitted() {
	e.pending = nil
}

func (e *Event) record(payload Payload, now time.Time) {
	e.pending = append(e.pending, NewDomainEvent(e.id, payload, now))
}

// EventCommandRepository is the authoritative write store for Event aggregates.
type EventCommandRepository interface {
	// Save persists e and then publishes its pending domain events in order.
	Save(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id EventID) (*Event, error)
	FindByOrganizer(ctx context.Context, organizerID OrganizerID) ([]*Event, error)
	FindPublishedEvents(ctx context.Context) ([]*Event, error)
}

func validateDetails(d EventDetails, now time.Time) (EventDetails, error) {
	if strings.TrimSpace(d.Name) == "" {
		return d, NewValidationError(RuleName, "event name is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return d, NewValidationError(RuleDescription, "event description is required")
	}
	if !d.StartDate.Before(d.EndDate) {
		return d, NewValidationError(RuleDateOrder, "start date must be before end date")
	}
	if d.StartDate.Before(now) {
		return d, NewValidationError(RuleDateInPast, "event cannot be in the past")
	}
	if !d.EventType.Valid() {
		return d, NewValidationError(RuleEventType, "event type must be public or private")
	}
	if !d.TicketType.Valid() {
		return d, NewValidationError(RuleTicketType, "ticket type must be free or paid")
	}
	switch d.TicketType {
	case TicketTypePaid:
		if d.TicketPrice == nil || d.TicketPrice.Amount <= 0 {
			return d, NewValidationError(RuleTicketPrice, "paid events must have a valid ticket price")
		}
	case TicketTypeFree:
		if d.TicketPrice != nil && d.TicketPrice.Amount > 0 {
			return d, NewValidationError(RuleTicketPrice, "free events cannot have a ticket price")
		}
	}
	if err := d.Location.Validate(); err != nil {
		return d, err
	}

	d.Location = cloneLocation(d.Location)
	if d.TicketType == TicketTypeFree {
		d.TicketPrice = nil
	} else {
		d.TicketPrice = cloneMoney(d.TicketPrice)
	}
	return d, nil
}

func diffDetails(cur, next EventDetails) []string {
	var changes []string
	if cur.Name != next.Name {
		changes = append(changes, FieldName)
	}
	if cur.Description != next.Description {
		changes = append(changes, FieldDescription)
	}
	if !cur.StartDate.Equal(next.StartDate) {
		changes = append(changes, FieldStartDate)
	}
	if !cur.EndDate.Equal(next.EndDate) {
		changes = append(changes, FieldEndDate)
	}
	if !cur.Location.Equal(next.Location) {
		changes = append(changes, FieldLocation)
	}
	if cur.EventType != next.EventType {
		changes = append(changes, FieldEventType)
	}
	if cur.TicketType != next.TicketType {
		changes = append(changes, FieldTicketType)
	}
	if !moneyEqual(cur.TicketPrice, next.TicketPrice) {
		changes = append(changes, FieldTicketPrice)
	}
	return changes
}

func moneyEqual(a, b *Money) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func cloneMoney(m *Money) *Money {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func cloneLocation(l Location) Location {
	if l.Address != nil {
		a := *l.Address
		l.Address = &a
	}
	return l
}
