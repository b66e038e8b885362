package usecase

import (
	"context"
	"fmt"

	"eventcatalog/internal/domain"
)

// CommandHandlers holds exactly one handler per command type.
type CommandHandlers struct {
	CreateEvent  func(context.Context, CreateEvent) CommandResult
	UpdateEvent  func(context.Context, UpdateEvent) CommandResult
	PublishEvent func(context.Context, PublishEvent) CommandResult
	CancelEvent  func(context.Context, CancelEvent) CommandResult
}

// CommandBus dispatches a command to its handler. A command without a handler is a
// wiring error and panics.
type CommandBus struct {
	handlers CommandHandlers
}

func NewCommandBus(handlers CommandHandlers) *CommandBus {
	return &CommandBus{handlers: handlers}
}

func (b *CommandBus) Execute(ctx context.Context, cmd Command) CommandResult {
	switch c := cmd.(type) {
	case CreateEvent:
		if b.handlers.CreateEvent == nil {
			break
		}
		return b.handlers.CreateEvent(ctx, c)
	case UpdateEvent:
		if b.handlers.UpdateEvent == nil {
			break
		}
		return b.handlers.UpdateEvent(ctx, c)
	case PublishEvent:
		if b.handlers.PublishEvent == nil {
			break
		}
		return b.handlers.PublishEvent(ctx, c)
	case CancelEvent:
		if b.handlers.CancelEvent == nil {
			break
		}
		return b.handlers.CancelEvent(ctx, c)
	}
	panic(fmt.Sprintf("usecase: no handler registered for command %T", cmd))
}

// QueryHandlers holds exactly one handler per query type.
type QueryHandlers struct {
	GetEventByID         func(context.Context, GetEventByID) (*domain.EventDTO, error)
	GetEventsByOrganizer func(context.Context, GetEventsByOrganizer) ([]domain.EventDTO, error)
	GetPublishedEvents   func(context.Context, GetPublishedEvents) ([]domain.EventDTO, error)
	GetAllEvents         func(context.Context, GetAllEvents) ([]domain.EventDTO, error)
	GetEventStats        func(context.Context, GetEventStats) (domain.EventStats, error)
}

// QueryBus dispatches a query to its handler. A query without a handler panics.
type QueryBus struct {
	handlers QueryHandlers
}

func NewQueryBus(handlers QueryHandlers) *QueryBus {
	return &QueryBus{handlers: handlers}
}

// Execute returns the handler's result as any. Ask gives it back its static type.
func (b *QueryBus) Execute(ctx context.Context, q Query) (any, error) {
	switch c := q.(type) {
	case GetEventByID:
		if b.handlers.GetEventByID == nil {
			break
		}
		return b.handlers.GetEventByID(ctx, c)
	case GetEventsByOrganizer:
		if b.handlers.GetEventsByOrganizer == nil {
			break
		}
		return b.handlers.GetEventsByOrganizer(ctx, c)
	case GetPublishedEvents:
		if b.handlers.GetPublishedEvents == nil {
			break
		}
		return b.handlers.GetPublishedEvents(ctx, c)
	case GetAllEvents:
		if b.handlers.GetAllEvents == nil {
			break
		}
		return b.handlers.GetAllEvents(ctx, c)
	case GetEventStats:
		if b.handlers.GetEventStats == nil {
			break
		}
		return b.handlers.GetEventStats(ctx, c)
	}
	panic(fmt.Sprintf("usecase: no handler registered for query %T", q))
}

// Ask executes q and asserts the result type R.
func Ask[R any](ctx context.Context, bus *QueryBus, q Query) (R, error) {
	var zero R
	res, err := bus.Execute(ctx, q)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	out, ok := res.(R)
	if !ok {
		panic(fmt.Sprintf("usecase: query %T yields %T, not %T", q, res, zero))
	}
	return out, nil
}
