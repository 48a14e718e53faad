package invoice

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/db"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type Repository interface {
	Create(ctx context.Context, inv models.Invoice) (models.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (models.Invoice, error)
	ListByEmail(ctx context.Context, email string) ([]models.Invoice, error)
	MarkPaid(ctx context.Context, invoiceNumber string, at time.Time) (models.Invoice, error)
}

type MongoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewRepository(col, counters *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col, counters: counters}
}

func (r *MongoRepository) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	id, err := db.NextSequence(ctx, r.counters, "invoices")
	if err != nil {
		return models.Invoice{}, err
	}
	inv.ID = id

	if _, err := r.col.InsertOne(ctx, inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func (r *MongoRepository) GetByNumber(ctx context.Context, invoiceNumber string) (models.Invoice, error) {
	var inv models.Invoice
	if err := r.col.FindOne(ctx, bson.M{"invoiceNumber": invoiceNumber}).Decode(&inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func (r *MongoRepository) ListByEmail(ctx context.Context, email string) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"customerEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Invoice, 0)
	for cursor.Next(ctx) {
		var inv models.Invoice
		if err := cursor.Decode(&inv); err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkPaid sets status and paidAt keyed by invoiceNumber, regardless of
// the current status. Re-paying a paid invoice just re-applies the set.
func (r *MongoRepository) MarkPaid(ctx context.Context, invoiceNumber string, at time.Time) (models.Invoice, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"status": models.InvoiceStatusPaid,
		"paidAt": at,
	}}

	var updated models.Invoice
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"invoiceNumber": invoiceNumber}, update, opts).Decode(&updated); err != nil {
		return models.Invoice{}, err
	}
	return updated, nil
}
