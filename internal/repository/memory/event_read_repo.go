package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"eventcatalog/internal/domain"
)

// EventReadRepository is an in-memory read store. It implements both the query side and
// the projection's writer.
type EventReadRepository struct {
	now func() time.Time

	mu   sync.RWMutex
	rows map[string]domain.EventDTO
}

var (
	_ domain.EventQueryRepository = (*EventReadRepository)(nil)
	_ domain.EventReadModelWriter = (*EventReadRepository)(nil)
)

func NewEventReadRepository(now func() time.Time) *EventReadRepository {
	if now == nil {
		now = time.Now
	}
	return &EventReadRepository{
		now:  now,
		rows: make(map[string]domain.EventDTO),
	}
}

func (r *EventReadRepository) EnsureSchema(ctx context.Context) error {
	return ctx.Err()
}

func (r *EventReadRepository) UpsertEvent(ctx context.Context, row domain.EventDTO) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	row = cloneRow(row)
	row.CreatedAt = now
	if existing, ok := r.rows[row.ID]; ok {
		row.CreatedAt = existing.CreatedAt
		row.OrganizerID = existing.OrganizerID
	}
	row.UpdatedAt = now
	r.rows[row.ID] = row
	return nil
}

func (r *EventReadRepository) UpdateEvent(ctx context.Context, row domain.EventDTO) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[row.ID]
	if !ok {
		return domain.ErrNotFound
	}
	row = cloneRow(row)
	row.OrganizerID = existing.OrganizerID
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = r.now()
	r.rows[row.ID] = row
	return nil
}

func (r *EventReadRepository) SetPublished(ctx context.Context, id string, published bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	row.IsPublished = published
	row.UpdatedAt = r.now()
	r.rows[id] = row
	return nil
}

func (r *EventReadRepository) FindByID(ctx context.Context, id string) (*domain.EventDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	row = cloneRow(row)
	return &row, nil
}

func (r *EventReadRepository) FindByOrganizer(ctx context.Context, organizerID string) ([]domain.EventDTO, error) {
	return r.list(ctx, func(row domain.EventDTO) bool { return row.OrganizerID == organizerID }, rowsNewestFirst)
}

func (r *EventReadRepository) FindPublishedEvents(ctx context.Context) ([]domain.EventDTO, error) {
	return r.list(ctx, func(row domain.EventDTO) bool { return row.IsPublished }, rowsSoonestFirst)
}

func (r *EventReadRepository) FindAllEvents(ctx context.Context) ([]domain.EventDTO, error) {
	return r.list(ctx, func(domain.EventDTO) bool { return true }, rowsNewestFirst)
}

func (r *EventReadRepository) list(ctx context.Context, keep func(domain.EventDTO) bool, cmp func(a, b domain.EventDTO) int) ([]domain.EventDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]domain.EventDTO, 0, len(r.rows))
	for _, row := range r.rows {
		if keep(row) {
			out = append(out, cloneRow(row))
		}
	}
	r.mu.RUnlock()
	slices.SortFunc(out, cmp)
	return out, nil
}

func rowsNewestFirst(a, b domain.EventDTO) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}

func rowsSoonestFirst(a, b domain.EventDTO) int {
	if c := a.StartDate.Compare(b.StartDate); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}

func compareIDs(a, b string) int {
	return strings.Compare(a, b)
}

func cloneRow(row domain.EventDTO) domain.EventDTO {
	if row.Address != nil {
		a := *row.Address
		row.Address = &a
	}
	if row.TicketPriceAmount != nil {
		v := *row.TicketPriceAmount
		row.TicketPriceAmount = &v
	}
	if row.TicketPriceCurrency != nil {
		c := *row.TicketPriceCurrency
		row.TicketPriceCurrency = &c
	}
	return row
}
