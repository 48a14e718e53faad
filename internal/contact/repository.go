package contact

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/db"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type Repository interface {
	Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type MongoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewRepository(col, counters *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col, counters: counters}
}

func (r *MongoRepository) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	id, err := db.NextSequence(ctx, r.counters, "contact_messages")
	if err != nil {
		return models.ContactMessage{}, err
	}
	m.ID = id

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return models.ContactMessage{}, err
	}
	return m, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.ContactMessage, 0)
	for cursor.Next(ctx) {
		var m models.ContactMessage
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
