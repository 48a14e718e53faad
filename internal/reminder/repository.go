package reminder

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/db"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type ListFilter struct {
	Status string
}

type Repository interface {
	Create(ctx context.Context, r models.Reminder) (models.Reminder, error)
	DuePending(ctx context.Context, now time.Time) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id int64, at time.Time) (bool, error)
	ListByEmail(ctx context.Context, email string) ([]models.Reminder, error)
	List(ctx context.Context, filter ListFilter) ([]models.Reminder, error)
}

type MongoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewRepository(col, counters *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col, counters: counters}
}

func (r *MongoRepository) Create(ctx context.Context, rem models.Reminder) (models.Reminder, error) {
	id, err := db.NextSequence(ctx, r.counters, "reminders")
	if err != nil {
		return models.Reminder{}, err
	}
	rem.ID = id

	if _, err := r.col.InsertOne(ctx, rem); err != nil {
		return models.Reminder{}, err
	}
	return rem, nil
}

func (r *MongoRepository) DuePending(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"status":       models.ReminderStatusPending,
		"scheduledFor": bson.M{"$lte": now},
	}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeReminders(ctx, cursor)
}

// MarkSent flips a pending reminder to sent. The status guard makes the
// update a no-op when another sweep already claimed the row; the boolean
// reports whether this call performed the flip.
func (r *MongoRepository) MarkSent(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.ReminderStatusPending},
		bson.M{"$set": bson.M{
			"status": models.ReminderStatusSent,
			"sentAt": at,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoRepository) ListByEmail(ctx context.Context, email string) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledFor", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"customerEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	return decodeReminders(ctx, cursor)
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]models.Reminder, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledFor", Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return decodeReminders(ctx, cursor)
}

func decodeReminders(ctx context.Context, cursor *mongo.Cursor) ([]models.Reminder, error) {
	defer cursor.Close(ctx)

	items := make([]models.Reminder, 0)
	for cursor.Next(ctx) {
		var rem models.Reminder
		if err := cursor.Decode(&rem); err != nil {
			return nil, err
		}
		items = append(items, rem)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
