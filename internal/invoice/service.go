package invoice

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

var (
	ErrNotFound        = errors.New("invoice not found")
	ErrDuplicateNumber = errors.New("invoice number already exists")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{repo: repo, location: location}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Invoice, error) {
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = models.InvoiceStatusUnpaid
	}

	now := time.Now().In(s.location)
	inv := models.Invoice{
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		ServiceTitle:  strings.TrimSpace(req.ServiceTitle),
		Amount:        req.Amount,
		Status:        status,
		DueDate:       strings.TrimSpace(req.DueDate),
		CreatedAt:     now,
	}
	if status == models.InvoiceStatusPaid {
		inv.PaidAt = &now
	}

	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Invoice{}, ErrDuplicateNumber
		}
		return models.Invoice{}, err
	}
	return created, nil
}

func (s *Service) LookupByNumber(ctx context.Context, invoiceNumber string) (models.Invoice, error) {
	inv, err := s.repo.GetByNumber(ctx, strings.TrimSpace(invoiceNumber))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Invoice{}, ErrNotFound
		}
		return models.Invoice{}, err
	}
	return inv, nil
}

func (s *Service) LookupByEmail(ctx context.Context, email string) ([]models.Invoice, error) {
	return s.repo.ListByEmail(ctx, strings.TrimSpace(email))
}

// Pay flips unpaid to paid. Safe to call on an already-paid invoice; the
// caller gets the paid document back either way.
func (s *Service) Pay(ctx context.Context, invoiceNumber string) (models.Invoice, error) {
	updated, err := s.repo.MarkPaid(ctx, strings.TrimSpace(invoiceNumber), time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Invoice{}, ErrNotFound
		}
		return models.Invoice{}, err
	}
	return updated, nil
}
