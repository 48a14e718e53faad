package dashboard

import (
	"context"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats computes a fresh snapshot. Unpaid is derived as total minus paid
// so the two invoice statuses always add up.
func (s *Service) Stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.TotalBookings, err = s.repo.CountBookings(ctx, ""); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.PendingBookings, err = s.repo.CountBookings(ctx, models.BookingStatusPending); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.TotalInvoices, err = s.repo.CountInvoices(ctx, ""); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.PaidInvoices, err = s.repo.CountInvoices(ctx, models.InvoiceStatusPaid); err != nil {
		return models.DashboardStats{}, err
	}
	stats.UnpaidInvoices = stats.TotalInvoices - stats.PaidInvoices
	if stats.TotalRevenue, err = s.repo.PaidRevenue(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.TotalContacts, err = s.repo.CountContacts(ctx); err != nil {
		return models.DashboardStats{}, err
	}
	if stats.PendingReminders, err = s.repo.CountReminders(ctx, models.ReminderStatusPending); err != nil {
		return models.DashboardStats{}, err
	}

	return stats, nil
}
