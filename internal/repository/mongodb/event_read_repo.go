package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"eventcatalog/internal/domain"
)

// DefaultCollection holds one document per event read model.
const DefaultCollection = "event_read_models"

type EventBSON struct {
	ID                  string    `bson:"_id"`
	OrganizerID         string    `bson:"organizer_id"`
	Name                string    `bson:"name"`
	Description         string    `bson:"description"`
	StartDate           time.Time `bson:"start_date"`
	EndDate             time.Time `bson:"end_date"`
	Address             *string   `bson:"address"`
	IsOnline            bool      `bson:"is_online"`
	EventType           string    `bson:"event_type"`
	TicketType          string    `bson:"ticket_type"`
	TicketPriceAmount   *float64  `bson:"ticket_price_amount"`
	TicketPriceCurrency *string   `bson:"ticket_price_currency"`
	IsPublished         bool      `bson:"is_published"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

func (d EventBSON) toDTO() domain.EventDTO {
	return domain.EventDTO{
		ID:                  d.ID,
		OrganizerID:         d.OrganizerID,
		Name:                d.Name,
		Description:         d.Description,
		StartDate:           d.StartDate,
		EndDate:             d.EndDate,
		Address:             d.Address,
		IsOnline:            d.IsOnline,
		EventType:           domain.EventType(d.EventType),
		TicketType:          domain.TicketType(d.TicketType),
		TicketPriceAmount:   d.TicketPriceAmount,
		TicketPriceCurrency: d.TicketPriceCurrency,
		IsPublished:         d.IsPublished,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// EventReadRepository keeps the read model in a MongoDB collection.
type EventReadRepository struct {
	client         *mongo.Client
	dbName         string
	collectionName string
	now            func() time.Time
}

var (
	_ domain.EventQueryRepository = (*EventReadRepository)(nil)
	_ domain.EventReadModelWriter = (*EventReadRepository)(nil)
)

func NewEventReadRepository(client *mongo.Client, dbName string, collectionName string) *EventReadRepository {
	return &EventReadRepository{
		client:         client,
		dbName:         dbName,
		collectionName: collectionName,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (r *EventReadRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collectionName)
}

// EnsureSchema creates the organizer and publication indexes. Collections are created
// implicitly on first write.
func (r *EventReadRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_published", Value: 1}, {Key: "start_date", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create read model indexes: %w", err)
	}
	return nil
}

func mutableFields(row domain.EventDTO) bson.M {
	return bson.M{
		"name":                  row.Name,
		"description":           row.Description,
		"start_date":            row.StartDate,
		"end_date":              row.EndDate,
		"address":               row.Address,
		"is_online":             row.IsOnline,
		"event_type":            string(row.EventType),
		"ticket_type":           string(row.TicketType),
		"ticket_price_amount":   row.TicketPriceAmount,
		"ticket_price_currency": row.TicketPriceCurrency,
		"is_published":          row.IsPublished,
	}
}

func (r *EventReadRepository) UpsertEvent(ctx context.Context, row domain.EventDTO) error {
	now := r.now()
	set := mutableFields(row)
	set["updated_at"] = now
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"organizer_id": row.OrganizerID,
			"created_at":   now,
		},
	}
	_, err := r.collection().UpdateOne(ctx, bson.M{"_id": row.ID}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert read model: %w", err)
	}
	return nil
}

func (r *EventReadRepository) UpdateEvent(ctx context.Context, row domain.EventDTO) error {
	set := mutableFields(row)
	set["updated_at"] = r.now()
	return r.updateExisting(ctx, row.ID, set)
}

func (r *EventReadRepository) SetPublished(ctx context.Context, id string, published bool) error {
	return r.updateExisting(ctx, id, bson.M{
		"is_published": published,
		"updated_at":   r.now(),
	})
}

func (r *EventReadRepository) updateExisting(ctx context.Context, id string, set bson.M) error {
	result, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update read model: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventReadRepository) FindByID(ctx context.Context, id string) (*domain.EventDTO, error) {
	var doc EventBSON
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find read model: %w", err)
	}
	dto := doc.toDTO()
	return &dto, nil
}

func (r *EventReadRepository) FindByOrganizer(ctx context.Context, organizerID string) ([]domain.EventDTO, error) {
	return r.find(ctx, bson.M{"organizer_id": organizerID}, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
}

func (r *EventReadRepository) FindPublishedEvents(ctx context.Context) ([]domain.EventDTO, error) {
	return r.find(ctx, bson.M{"is_published": true}, bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}})
}

func (r *EventReadRepository) FindAllEvents(ctx context.Context) ([]domain.EventDTO, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
}

func (r *EventReadRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]domain.EventDTO, error) {
	cursor, err := r.collection().Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find read models: %w", err)
	}
	var docs []EventBSON
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode read models: %w", err)
	}
	out := make([]domain.EventDTO, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDTO())
	}
	return out, nil
}
