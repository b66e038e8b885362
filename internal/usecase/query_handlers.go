package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventcatalog/internal/domain"
)

// EventQueryHandlers answers Event queries from the read repository only.
type EventQueryHandlers struct {
	repo           domain.EventQueryRepository
	contextTimeout time.Duration
}

func NewEventQueryHandlers(repo domain.EventQueryRepository, timeout time.Duration) *EventQueryHandlers {
	return &EventQueryHandlers{
		repo:           repo,
		contextTimeout: timeout,
	}
}

// Handlers returns every query handler for NewQueryBus.
func (h *EventQueryHandlers) Handlers() QueryHandlers {
	return QueryHandlers{
		GetEventByID:         h.HandleGetEventByID,
		GetEventsByOrganizer: h.HandleGetEventsByOrganizer,
		GetPublishedEvents:   h.HandleGetPublishedEvents,
		GetAllEvents:         h.HandleGetAllEvents,
		GetEventStats:        h.HandleGetEventStats,
	}
}

// HandleGetEventByID returns nil without error when the event is unknown.
func (h *EventQueryHandlers) HandleGetEventByID(ctx context.Context, q GetEventByID) (*domain.EventDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	dto, err := h.repo.FindByID(ctx, q.EventID.String())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return dto, nil
}

func (h *EventQueryHandlers) HandleGetEventsByOrganizer(ctx context.Context, q GetEventsByOrganizer) ([]domain.EventDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	events, err := h.repo.FindByOrganizer(ctx, q.OrganizerID.String())
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}
	return events, nil
}

func (h *EventQueryHandlers) HandleGetPublishedEvents(ctx context.Context, _ GetPublishedEvents) ([]domain.EventDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	events, err := h.repo.FindPublishedEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published events: %w", err)
	}
	return events, nil
}

func (h *EventQueryHandlers) HandleGetAllEvents(ctx context.Context, _ GetAllEvents) ([]domain.EventDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	events, err := h.repo.FindAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (h *EventQueryHandlers) HandleGetEventStats(ctx context.Context, _ GetEventStats) (domain.EventStats, error) {
	events, err := h.HandleGetAllEvents(ctx, GetAllEvents{})
	if err != nil {
		return domain.EventStats{}, err
	}
	return domain.NewEventStats(events), nil
}
