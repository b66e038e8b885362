package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/domain"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []domain.DomainEvent
}

func (p *fakePublisher) Subscribe(domain.DomainEventType, domain.DomainEventHandler) {}

func (p *fakePublisher) Publish(_ context.Context, evt domain.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, evt)
}

func (p *fakePublisher) PublishAll(ctx context.Context, evts []domain.DomainEvent) {
	for _, evt := range evts {
		p.Publish(ctx, evt)
	}
}

// stepClock returns base, base+1m, base+2m, ... on successive calls.
func stepClock(base time.Time) func() time.Time {
	var mu sync.Mutex
	next := base
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

var base = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func details(name string, startIn time.Duration) domain.EventDetails {
	start := base.Add(startIn)
	return domain.EventDetails{
		Name:        name,
		Description: "desc",
		StartDate:   start,
		EndDate:     start.Add(time.Hour),
		Location:    domain.Location{IsOnline: true},
		EventType:   domain.EventTypePublic,
		TicketType:  domain.TicketTypeFree,
	}
}

func TestEventCommandRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	repo := NewEventCommandRepository(pub, stepClock(base))

	e, err := domain.CreateEvent("org-1", details("A", 48*time.Hour), base)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, e))
	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.EventCreated, pub.published[0].Type)
	assert.Empty(t, e.PendingEvents())
	assert.Equal(t, base, e.CreatedAt())

	loaded, err := repo.FindByID(ctx, e.ID())
	require.NoError(t, err)
	assert.Equal(t, e.Snapshot(), loaded.Snapshot())

	loaded.Publish(base)
	require.NoError(t, repo.Save(ctx, loaded))
	require.Len(t, pub.published, 2)
	assert.Equal(t, domain.EventPublished, pub.published[1].Type)
	assert.Equal(t, base, loaded.CreatedAt())
	assert.Equal(t, base.Add(time.Minute), loaded.UpdatedAt())

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventCommandRepository_CreateOverExistingIsRefused(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	repo := NewEventCommandRepository(pub, stepClock(base))

	e, err := domain.CreateEvent("org-1", details("A", time.Hour), base)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, domain.RestoreEvent(e.Snapshot())))
	require.Len(t, pub.published, 1)

	err = repo.Save(ctx, e)
	require.ErrorIs(t, err, domain.ErrEventExists)
	assert.Len(t, e.PendingEvents(), 1)
	assert.Len(t, pub.published, 1)
}

func TestEventCommandRepository_Lists(t *testing.T) {
	ctx := context.Background()
	repo := NewEventCommandRepository(&fakePublisher{}, stepClock(base))

	late, _ := domain.CreateEvent("org-1", details("late", 72*time.Hour), base)
	early, _ := domain.CreateEvent("org-1", details("early", 24*time.Hour), base)
	other, _ := domain.CreateEvent("org-2", details("other", 48*time.Hour), base)
	for _, e := range []*domain.Event{late, early, other} {
		require.NoError(t, repo.Save(ctx, e))
	}
	late.Publish(base)
	early.Publish(base)
	require.NoError(t, repo.Save(ctx, late))
	require.NoError(t, repo.Save(ctx, early))

	mine, err := repo.FindByOrganizer(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "early", mine[0].Name())
	assert.Equal(t, "late", mine[1].Name())

	published, err := repo.FindPublishedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "early", published[0].Name())
	assert.Equal(t, "late", published[1].Name())
}

func TestEventReadRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEventReadRepository(stepClock(base))

	row := domain.NewEventDTO(domain.EventSnapshot{
		ID:          "ev-1",
		OrganizerID: "org-1",
		Name:        "A",
		Description: "desc",
		StartDate:   base.Add(48 * time.Hour),
		EndDate:     base.Add(49 * time.Hour),
		Location:    domain.Location{IsOnline: true},
		EventType:   domain.EventTypePublic,
		TicketType:  domain.TicketTypeFree,
	})

	assert.ErrorIs(t, repo.UpdateEvent(ctx, row), domain.ErrNotFound)
	assert.ErrorIs(t, repo.SetPublished(ctx, "ev-1", true), domain.ErrNotFound)

	require.NoError(t, repo.UpsertEvent(ctx, row))
	require.NoError(t, repo.UpsertEvent(ctx, row))
	got, err := repo.FindByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, base, got.CreatedAt)
	assert.Equal(t, base.Add(time.Minute), got.UpdatedAt)

	row.Name = "A2"
	row.OrganizerID = "someone-else"
	require.NoError(t, repo.UpdateEvent(ctx, row))
	require.NoError(t, repo.SetPublished(ctx, "ev-1", true))
	require.NoError(t, repo.SetPublished(ctx, "ev-1", true))

	got, err = repo.FindByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, "org-1", got.OrganizerID)
	assert.True(t, got.IsPublished)
	assert.Equal(t, base, got.CreatedAt)

	second := row
	second.ID = "ev-2"
	second.OrganizerID = "org-1"
	second.IsPublished = false
	second.StartDate = base.Add(24 * time.Hour)
	require.NoError(t, repo.UpsertEvent(ctx, second))

	all, err := repo.FindAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ev-2", all[0].ID)

	mine, err := repo.FindByOrganizer(ctx, "org-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	published, err := repo.FindPublishedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "ev-1", published[0].ID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
