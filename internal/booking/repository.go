package booking

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/db"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type Repository interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	List(ctx context.Context, limit, offset int64) ([]models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error)
}

type MongoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewRepository(col, counters *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col, counters: counters}
}

func (r *MongoRepository) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	id, err := db.NextSequence(ctx, r.counters, "bookings")
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id

	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *MongoRepository) List(ctx context.Context, limit, offset int64) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}
	return r.find(ctx, bson.M{}, opts)
}

func (r *MongoRepository) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"email": email}, opts)
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Booking, 0)
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status}}

	var updated models.Booking
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.Booking{}, err
	}
	return updated, nil
}
