package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventcatalog/internal/domain"
	"eventcatalog/internal/eventbus"
	"eventcatalog/internal/projection"
	"eventcatalog/internal/repository/memory"
)

// catalog wires the full command and query path over in-memory stores.
type catalog struct {
	clock     *fakeClock
	publisher *eventbus.Publisher
	writes    *memory.EventCommandRepository
	reads     *memory.EventReadRepository
	commands  *CommandBus
	queries   *QueryBus
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCatalog(start time.Time) *catalog {
	clock := &fakeClock{now: start}
	logger := discardLogger()
	publisher := eventbus.NewPublisher(logger)
	writes := memory.NewEventCommandRepository(publisher, clock.Now)
	reads := memory.NewEventReadRepository(clock.Now)
	projection.NewEventProjector(reads, logger).Register(publisher)

	return &catalog{
		clock:     clock,
		publisher: publisher,
		writes:    writes,
		reads:     reads,
		commands:  NewCommandBus(NewEventCommandHandlers(writes, logger, 5*time.Second, WithClock(clock.Now)).Handlers()),
		queries:   NewQueryBus(NewEventQueryHandlers(reads, 5*time.Second).Handlers()),
	}
}

func (c *catalog) fields(name string) EventFields {
	start := c.clock.now.Add(30 * 24 * time.Hour)
	return EventFields{
		Name:        name,
		Description: "Two days of talks",
		StartDate:   start,
		EndDate:     start.Add(8 * time.Hour),
		IsOnline:    true,
		EventType:   domain.EventTypePublic,
		TicketType:  domain.TicketTypeFree,
	}
}

func (c *catalog) create(ctx context.Context, organizer domain.OrganizerID, fields EventFields) CommandResult {
	return c.commands.Execute(ctx, CreateEvent{OrganizerID: organizer, EventFields: fields})
}

// failingRepo returns err from every method.
type failingRepo struct {
	err error
}

func (r failingRepo) Save(context.Context, *domain.Event) error { return r.err }

func (r failingRepo) FindByID(context.Context, domain.EventID) (*domain.Event, error) {
	return nil, r.err
}

func (r failingRepo) FindByOrganizer(context.Context, domain.OrganizerID) ([]*domain.Event, error) {
	return nil, r.err
}

func (r failingRepo) FindPublishedEvents(context.Context) ([]*domain.Event, error) {
	return nil, r.err
}
