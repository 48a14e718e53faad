package contact

import (
	"context"
	"strings"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{repo: repo, location: location}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (models.ContactMessage, error) {
	m := models.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().In(s.location),
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.List(ctx)
}
