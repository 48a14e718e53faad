package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/db"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type Repository interface {
	CountBookings(ctx context.Context, status string) (int64, error)
	CountInvoices(ctx context.Context, status string) (int64, error)
	PaidRevenue(ctx context.Context) (int64, error)
	CountContacts(ctx context.Context) (int64, error)
	CountReminders(ctx context.Context, status string) (int64, error)
}

type MongoRepository struct {
	cols *db.Collections
}

func NewRepository(cols *db.Collections) *MongoRepository {
	return &MongoRepository{cols: cols}
}

func statusFilter(status string) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}

func (r *MongoRepository) CountBookings(ctx context.Context, status string) (int64, error) {
	return r.cols.Bookings.CountDocuments(ctx, statusFilter(status))
}

func (r *MongoRepository) CountInvoices(ctx context.Context, status string) (int64, error) {
	return r.cols.Invoices.CountDocuments(ctx, statusFilter(status))
}

func (r *MongoRepository) CountContacts(ctx context.Context) (int64, error) {
	return r.cols.ContactMessages.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepository) CountReminders(ctx context.Context, status string) (int64, error) {
	return r.cols.Reminders.CountDocuments(ctx, statusFilter(status))
}

// PaidRevenue sums amount over paid invoices, in minor currency units.
func (r *MongoRepository) PaidRevenue(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.InvoiceStatusPaid}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.cols.Invoices.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, err
	}
	return result.Total, nil
}
