package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventcatalog/internal/domain"
)

type eventCommandRepository struct {
	DB        *sql.DB
	publisher domain.DomainEventPublisher
	now       func() time.Time
}

// NewEventCommandRepository returns the authoritative event store. Pending domain events
// are handed to publisher after each successful Save.
func NewEventCommandRepository(db *sql.DB, publisher domain.DomainEventPublisher) domain.EventCommandRepository {
	return &eventCommandRepository{
		DB:        db,
		publisher: publisher,
		now:       time.Now,
	}
}

func (r *eventCommandRepository) Save(ctx context.Context, e *domain.Event) error {
	var existed bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, e.ID().String()).Scan(&existed)
	if err != nil {
		return fmt.Errorf("check event exists: %w", err)
	}

	evts, err := e.EventsToCommit(existed, r.now())
	if err != nil {
		return err
	}

	row := domain.NewEventDTO(e.Snapshot())
	args := append([]any{row.ID, row.OrganizerID}, mutableArgs(row)...)
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			address = EXCLUDED.address,
			is_online = EXCLUDED.is_online,
			event_type = EXCLUDED.event_type,
			ticket_type = EXCLUDED.ticket_type,
			ticket_price_amount = EXCLUDED.ticket_price_amount,
			ticket_price_currency = EXCLUDED.ticket_price_currency,
			is_published = EXCLUDED.is_published,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("upsert event: %w", err)
	}
	e.SetTimestamps(createdAt, updatedAt)
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

func (r *eventCommandRepository) FindByID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	row, err := scanEventRow(r.DB.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return domain.RestoreEvent(snapshotFromRow(row)), nil
}

func (r *eventCommandRepository) FindByOrganizer(ctx context.Context, organizerID domain.OrganizerID) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, organizerID.String())
}

func (r *eventCommandRepository) FindPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_published = TRUE ORDER BY start_date ASC`
	return r.list(ctx, query)
}

func (r *eventCommandRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	stored, err := scanEventRows(rows)
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(stored))
	for _, row := range stored {
		events = append(events, domain.RestoreEvent(snapshotFromRow(row)))
	}
	return events, nil
}
