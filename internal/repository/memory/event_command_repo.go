package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"eventcatalog/internal/domain"
)

// EventCommandRepository keeps aggregates as snapshots in a map. It follows the same
// save protocol as the Postgres store and is used by tests and the memory driver.
type EventCommandRepository struct {
	publisher domain.DomainEventPublisher
	now       func() time.Time

	mu     sync.RWMutex
	events map[domain.EventID]domain.EventSnapshot
}

var _ domain.EventCommandRepository = (*EventCommandRepository)(nil)

func NewEventCommandRepository(publisher domain.DomainEventPublisher, now func() time.Time) *EventCommandRepository {
	if now == nil {
		now = time.Now
	}
	return &EventCommandRepository{
		publisher: publisher,
		now:       now,
		events:    make(map[domain.EventID]domain.EventSnapshot),
	}
}

func (r *EventCommandRepository) Save(ctx context.Context, e *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := r.now()

	r.mu.Lock()
	stored, existed := r.events[e.ID()]
	evts, err := e.EventsToCommit(existed, now)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	s := e.Snapshot()
	s.CreatedAt = now
	if existed {
		s.CreatedAt = stored.CreatedAt
	}
	s.UpdatedAt = now
	r.events[s.ID] = s
	r.mu.Unlock()

	e.SetTimestamps(s.CreatedAt, s.UpdatedAt)
	e.MarkCommitted()
	// The events are committed, so a caller giving up must not starve the projection.
	// Handlers stay bounded by the publisher's own timeout. One at a time so the
	// projection sees each aggregate's events in causal order.
	publishCtx := context.WithoutCancel(ctx)
	for _, evt := range evts {
		r.publisher.Publish(publishCtx, evt)
	}
	return nil
}

func (r *EventCommandRepository) FindByID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.RestoreEvent(s), nil
}

func (r *EventCommandRepository) FindByOrganizer(ctx context.Context, organizerID domain.OrganizerID) ([]*domain.Event, error) {
	return r.list(ctx, func(s domain.EventSnapshot) bool { return s.OrganizerID == organizerID }, newestFirst)
}

func (r *EventCommandRepository) FindPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, func(s domain.EventSnapshot) bool { return s.IsPublished }, soonestFirst)
}

func (r *EventCommandRepository) list(ctx context.Context, keep func(domain.EventSnapshot) bool, cmp func(a, b domain.EventSnapshot) int) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := make([]domain.EventSnapshot, 0, len(r.events))
	for _, s := range r.events {
		if keep(s) {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, cmp)
	out := make([]*domain.Event, 0, len(matched))
	for _, s := range matched {
		out = append(out, domain.RestoreEvent(s))
	}
	return out, nil
}

func newestFirst(a, b domain.EventSnapshot) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return compareIDs(string(a.ID), string(b.ID))
}

func soonestFirst(a, b domain.EventSnapshot) int {
	if c := a.StartDate.Compare(b.StartDate); c != 0 {
		return c
	}
	return compareIDs(string(a.ID), string(b.ID))
}
