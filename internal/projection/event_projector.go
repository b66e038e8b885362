package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"eventcatalog/internal/domain"
	"eventcatalog/pkg/logattr"
)

// EventProjector keeps the read store in step with the write store by applying every
// Event domain event to it. Applying the same event twice leaves the same row.
type EventProjector struct {
	store  domain.EventReadModelWriter
	logger *slog.Logger

	mu          sync.Mutex
	schemaReady bool
}

func NewEventProjector(store domain.EventReadModelWriter, logger *slog.Logger) *EventProjector {
	return &EventProjector{
		store:  store,
		logger: logger.With(logattr.Component("projection.EventProjector")),
	}
}

// Register subscribes the projector to all Event domain events.
func (p *EventProjector) Register(publisher domain.DomainEventPublisher) {
	for _, t := range []domain.DomainEventType{
		domain.EventCreated,
		domain.EventUpdated,
		domain.EventPublished,
		domain.EventCancelled,
	} {
		publisher.Subscribe(t, p.Handle)
	}
}

// EnsureSchema prepares the read store once. A failed attempt is retried on the next call.
func (p *EventProjector) EnsureSchema(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.schemaReady {
		return nil
	}
	if err := p.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure read schema: %w", err)
	}
	p.schemaReady = true
	return nil
}

// Handle applies one domain event to the read store.
func (p *EventProjector) Handle(ctx context.Context, evt domain.DomainEvent) error {
	if err := p.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := p.apply(ctx, evt); err != nil {
		return fmt.Errorf("project %s for event %s: %w", evt.Type, evt.AggregateID, err)
	}
	p.logger.Debug("domain event projected",
		logattr.DomainEventType(string(evt.Type)),
		logattr.EventID(evt.AggregateID.String()))
	return nil
}

func (p *EventProjector) apply(ctx context.Context, evt domain.DomainEvent) error {
	switch payload := evt.Payload.(type) {
	case domain.EventCreatedPayload:
		return p.store.UpsertEvent(ctx, domain.NewEventDTO(payload.Event))
	case domain.EventUpdatedPayload:
		row := domain.NewEventDTO(payload.Event)
		err := p.store.UpdateEvent(ctx, row)
		if errors.Is(err, domain.ErrNotFound) {
			// The update carries the full state, so a row lost earlier can be recreated.
			p.logger.Warn("read model missing on update, recreating",
				logattr.EventID(row.ID))
			return p.store.UpsertEvent(ctx, row)
		}
		return err
	case domain.EventPublishedPayload:
		return p.store.SetPublished(ctx, payload.EventID.String(), true)
	case domain.EventCancelledPayload:
		return p.store.SetPublished(ctx, payload.EventID.String(), false)
	default:
		return fmt.Errorf("unsupported payload %T", evt.Payload)
	}
}

// Rebuild replays evts in order against the read store. It stops at the first failure.
func (p *EventProjector) Rebuild(ctx context.Context, evts []domain.DomainEvent) error {
	for i, evt := range evts {
		if err := p.Handle(ctx, evt); err != nil {
			return fmt.Errorf("rebuild stopped at event %d: %w", i, err)
		}
	}
	p.logger.Info("read model rebuilt", slog.Int("events", len(evts)))
	return nil
}
