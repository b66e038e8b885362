package domain

import (
	"context"
	"time"
)

// EventDTO is the flattened read-side row of an event.
// swagger:model EventDTO
type EventDTO struct {
	ID                  string     `json:"id"`
	OrganizerID         string     `json:"organizer_id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             time.Time  `json:"end_date"`
	Address             *string    `json:"address"`
	IsOnline            bool       `json:"is_online"`
	EventType           EventType  `json:"event_type"`
	TicketType          TicketType `json:"ticket_type"`
	TicketPriceAmount   *float64   `json:"ticket_price_amount"`
	TicketPriceCurrency *string    `json:"ticket_price_currency"`
	IsPublished         bool       `json:"is_published"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewEventDTO flattens a snapshot. Timestamps are left for the read store to set.
func NewEventDTO(s EventSnapshot) EventDTO {
	dto := EventDTO{
		ID:          s.ID.String(),
		OrganizerID: s.OrganizerID.String(),
		Name:        s.Name,
		Description: s.Description,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		IsOnline:    s.Location.IsOnline,
		EventType:   s.EventType,
		TicketType:  s.TicketType,
		IsPublished: s.IsPublished,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Location.Address != nil {
		a := *s.Location.Address
		dto.Address = &a
	}
	if s.TicketPrice != nil {
		amount, currency := s.TicketPrice.Amount, s.TicketPrice.Currency
		dto.TicketPriceAmount = &amount
		dto.TicketPriceCurrency = &currency
	}
	return dto
}

// EventStats summarises the catalog.
// swagger:model EventStats
type EventStats struct {
	TotalEvents     int `json:"total_events"`
	PublishedEvents int `json:"published_events"`
	DraftEvents     int `json:"draft_events"`
}

// NewEventStats counts published and draft events.
func NewEventStats(events []EventDTO) EventStats {
	stats := EventStats{TotalEvents: len(events)}
	for _, e := range events {
		if e.IsPublished {
			stats.PublishedEvents++
		}
	}
	stats.DraftEvents = stats.TotalEvents - stats.PublishedEvents
	return stats
}

// EventQueryRepository serves denormalized event views. It never sees aggregates.
type EventQueryRepository interface {
	// FindByID returns ErrNotFound when the read store has no row for id.
	FindByID(ctx context.Context, id string) (*EventDTO, error)
	// FindByOrganizer orders by creation time, newest first.
	FindByOrganizer(ctx context.Context, organizerID string) ([]EventDTO, error)
	// FindPublishedEvents orders by start date, soonest first.
	FindPublishedEvents(ctx context.Context) ([]EventDTO, error)
	// FindAllEvents orders by creation time, newest first.
	FindAllEvents(ctx context.Context) ([]EventDTO, error)
}

// EventReadModelWriter applies projected changes to the read store.
type EventReadModelWriter interface {
	// EnsureSchema creates the read store's tables or indexes if missing.
	EnsureSchema(ctx context.Context) error
	// UpsertEvent inserts the row or overwrites it, keeping the original created_at.
	UpsertEvent(ctx context.Context, row EventDTO) error
	// UpdateEvent overwrites every mutable column; ErrNotFound when the row is missing.
	UpdateEvent(ctx context.Context, row EventDTO) error
	// SetPublished flips only the published flag; ErrNotFound when the row is missing.
	SetPublished(ctx context.Context, id string, published bool) error
}

// EventReadStore is a read store the projection can write and queries can read.
type EventReadStore interface {
	EventQueryRepository
	EventReadModelWriter
}
