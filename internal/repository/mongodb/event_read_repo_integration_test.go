//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"eventcatalog/internal/domain"
)

const (
	containersStartTimeout       = 60 * time.Second
	containersTerminationTimeout = 10 * time.Second
)

var mongodbURI string

func TestMain(m *testing.M) {
	ctx, cancelCtx := context.WithTimeout(context.Background(), containersStartTimeout)
	defer cancelCtx()

	uri, stopMongo, err := startMongoDBContainer(ctx)
	if err != nil {
		panic(err)
	}
	mongodbURI = uri

	code := m.Run()
	if err := stopMongo(); err != nil {
		panic(err)
	}
	os.Exit(code)
}

func startMongoDBContainer(ctx context.Context) (string, func() error, error) {
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(20 * time.Second),
	}
	mongodbC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("error creating mongodb container: %w", err)
	}
	host, err := mongodbC.Host(ctx)
	if err != nil {
		return "", nil, err
	}
	port, err := mongodbC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), func() error {
		terminationCtx, terminationCtxCancel := context.WithTimeout(context.Background(), containersTerminationTimeout)
		defer terminationCtxCancel()
		return mongodbC.Terminate(terminationCtx)
	}, nil
}

func newTestRepository(t *testing.T) *EventReadRepository {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI(mongodbURI))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := NewEventReadRepository(client, "eventcatalog_test", fmt.Sprintf("%s_%d", DefaultCollection, time.Now().UnixNano()))
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func row(id, organizer string, start time.Time, published bool) domain.EventDTO {
	addr := "Warszawa"
	amount, currency := 25.0, "PLN"
	return domain.EventDTO{
		ID:                  id,
		OrganizerID:         organizer,
		Name:                "Event " + id,
		Description:         "desc",
		StartDate:           start,
		EndDate:             start.Add(time.Hour),
		Address:             &addr,
		EventType:           domain.EventTypePublic,
		TicketType:          domain.TicketTypePaid,
		TicketPriceAmount:   &amount,
		TicketPriceCurrency: &currency,
		IsPublished:         published,
	}
}

func TestEventReadRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := repo.FindByID(ctx, "ev-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, repo.UpdateEvent(ctx, row("ev-1", "org-1", start, false)), domain.ErrNotFound)
	require.ErrorIs(t, repo.SetPublished(ctx, "ev-1", true), domain.ErrNotFound)

	require.NoError(t, repo.UpsertEvent(ctx, row("ev-1", "org-1", start, false)))
	first, err := repo.FindByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "org-1", first.OrganizerID)
	require.NotNil(t, first.Address)
	assert.Equal(t, "Warszawa", *first.Address)
	require.NotNil(t, first.TicketPriceAmount)
	assert.Equal(t, 25.0, *first.TicketPriceAmount)
	assert.True(t, first.StartDate.Equal(start))

	require.NoError(t, repo.UpsertEvent(ctx, row("ev-1", "org-1", start, false)))
	again, err := repo.FindByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, again.CreatedAt.Equal(first.CreatedAt))

	require.NoError(t, repo.SetPublished(ctx, "ev-1", true))
	require.NoError(t, repo.SetPublished(ctx, "ev-1", true))
	published, err := repo.FindByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	assert.Equal(t, first.Name, published.Name)
}

func TestEventReadRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertEvent(ctx, row("ev-late", "org-1", start.Add(48*time.Hour), true)))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.UpsertEvent(ctx, row("ev-early", "org-1", start, true)))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.UpsertEvent(ctx, row("ev-draft", "org-2", start, false)))

	published, err := repo.FindPublishedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "ev-early", published[0].ID)
	assert.Equal(t, "ev-late", published[1].ID)

	mine, err := repo.FindByOrganizer(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "ev-early", mine[0].ID)

	all, err := repo.FindAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ev-draft", all[0].ID)
}
