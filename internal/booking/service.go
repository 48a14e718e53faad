package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

var (
	ErrInvalidStatus = errors.New("invalid booking status")
	ErrNotFound      = errors.New("booking not found")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{repo: repo, location: location}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Booking, error) {
	b := models.Booking{
		ServiceID:     strings.TrimSpace(req.ServiceID),
		ServiceTitle:  strings.TrimSpace(req.ServiceTitle),
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		Address:       strings.TrimSpace(req.Address),
		PreferredDate: strings.TrimSpace(req.PreferredDate),
		Notes:         strings.TrimSpace(req.Notes),
		Status:        models.BookingStatusPending,
		CreatedAt:     time.Now().In(s.location),
	}

	return s.repo.Create(ctx, b)
}

func (s *Service) List(ctx context.Context, limit, offset int64) ([]models.Booking, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return s.repo.ListByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return models.Booking{}, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Booking{}, ErrNotFound
		}
		return models.Booking{}, err
	}
	return updated, nil
}
