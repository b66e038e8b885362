package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventcatalog/internal/domain"
)

// EventReadRepository stores the denormalized event_read_models table. It serves queries
// and receives projected changes.
type EventReadRepository struct {
	DB *sql.DB
}

var (
	_ domain.EventQueryRepository = (*EventReadRepository)(nil)
	_ domain.EventReadModelWriter = (*EventReadRepository)(nil)
)

func NewEventReadRepository(db *sql.DB) *EventReadRepository {
	return &EventReadRepository{DB: db}
}

func (r *EventReadRepository) EnsureSchema(ctx context.Context) error {
	return ensureSchema(ctx, r.DB, readTable)
}

func (r *EventReadRepository) FindByID(ctx context.Context, id string) (*domain.EventDTO, error) {
	query := `SELECT ` + eventColumns + ` FROM event_read_models WHERE id = $1`
	row, err := scanEventRow(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *EventReadRepository) FindByOrganizer(ctx context.Context, organizerID string) ([]domain.EventDTO, error) {
	query := `SELECT ` + eventColumns + ` FROM event_read_models WHERE organizer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, organizerID)
}

func (r *EventReadRepository) FindPublishedEvents(ctx context.Context) ([]domain.EventDTO, error) {
	query := `SELECT ` + eventColumns + ` FROM event_read_models WHERE is_published = TRUE ORDER BY start_date ASC`
	return r.list(ctx, query)
}

func (r *EventReadRepository) FindAllEvents(ctx context.Context) ([]domain.EventDTO, error) {
	query := `SELECT ` + eventColumns + ` FROM event_read_models ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *EventReadRepository) list(ctx context.Context, query string, args ...any) ([]domain.EventDTO, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanEventRows(rows)
}

func (r *EventReadRepository) UpsertEvent(ctx context.Context, row domain.EventDTO) error {
	query := `
		INSERT INTO event_read_models (` + eventColumns + `)
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
	`
	args := append([]any{row.ID, row.OrganizerID}, mutableArgs(row)...)
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert read model: %w", err)
	}
	return nil
}

func (r *EventReadRepository) UpdateEvent(ctx context.Context, row domain.EventDTO) error {
	query := `
		UPDATE event_read_models SET
			name = $2,
			description = $3,
			start_date = $4,
			end_date = $5,
			address = $6,
			is_online = $7,
			event_type = $8,
			ticket_type = $9,
			ticket_price_amount = $10,
			ticket_price_currency = $11,
			is_published = $12,
			updated_at = NOW()
		WHERE id = $1
	`
	args := append([]any{row.ID}, mutableArgs(row)...)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update read model: %w", err)
	}
	return requireAffected(result)
}

func (r *EventReadRepository) SetPublished(ctx context.Context, id string, published bool) error {
	query := `UPDATE event_read_models SET is_published = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, published)
	if err != nil {
		return fmt.Errorf("set read model published: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read model rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
