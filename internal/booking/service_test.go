package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type fakeRepo struct {
	nextID   int64
	bookings []models.Booking
}

func (f *fakeRepo) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int64) ([]models.Booking, error) {
	items := make([]models.Booking, 0)
	for i := len(f.bookings) - 1; i >= 0; i-- {
		items = append(items, f.bookings[i])
	}
	if offset > 0 {
		if offset >= int64(len(items)) {
			return []models.Booking{}, nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeRepo) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	items := make([]models.Booking, 0)
	for i := len(f.bookings) - 1; i >= 0; i-- {
		if f.bookings[i].Email == email {
			items = append(items, f.bookings[i])
		}
	}
	return items, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return f.bookings[i], nil
		}
	}
	return models.Booking{}, mongo.ErrNoDocuments
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateSetsPendingAndTrims(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	created, err := s.Create(context.Background(), CreateRequest{
		ServiceID:     "ac-repair",
		ServiceTitle:  "  AC Repair  ",
		FullName:      " Maria Alvarez ",
		Phone:         "+15035550101",
		Email:         " m.alvarez@example.com ",
		Address:       "88 Cedar Ln",
		PreferredDate: " 2026-03-05 14:00 ",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Status != models.BookingStatusPending {
		t.Fatalf("expected pending, got %q", created.Status)
	}
	if created.ID == 0 {
		t.Fatalf("id not assigned")
	}
	if created.ServiceTitle != "AC Repair" || created.FullName != "Maria Alvarez" {
		t.Fatalf("fields not trimmed: %+v", created)
	}
	if created.PreferredDate != "2026-03-05 14:00" {
		t.Fatalf("preferred date not trimmed: %q", created.PreferredDate)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}
}

func TestCreateKeepsUnparsableDate(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	created, err := s.Create(context.Background(), CreateRequest{
		ServiceID:     "solar-install",
		ServiceTitle:  "Solar Install",
		FullName:      "James Okafor",
		Phone:         "+15035550177",
		Email:         "j.okafor@example.com",
		Address:       "12 Birch St",
		PreferredDate: "sometime next week",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.PreferredDate != "sometime next week" {
		t.Fatalf("preferred date altered: %q", created.PreferredDate)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	created, err := s.Create(context.Background(), CreateRequest{
		ServiceID:     "ac-repair",
		ServiceTitle:  "AC Repair",
		FullName:      "Maria Alvarez",
		Phone:         "+15035550101",
		Email:         "m.alvarez@example.com",
		Address:       "88 Cedar Ln",
		PreferredDate: "2026-03-05 14:00",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := s.UpdateStatus(context.Background(), created.ID, " Confirmed ")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %q", updated.Status)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	s := newTestService(&fakeRepo{})
	if _, err := s.UpdateStatus(context.Background(), 1, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	s := newTestService(&fakeRepo{})
	if _, err := s.UpdateStatus(context.Background(), 99, "confirmed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByEmailNewestFirst(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(repo)

	for _, title := range []string{"AC Repair", "Duct Cleaning"} {
		if _, err := s.Create(context.Background(), CreateRequest{
			ServiceID:     "svc",
			ServiceTitle:  title,
			FullName:      "Maria Alvarez",
			Phone:         "+15035550101",
			Email:         "m.alvarez@example.com",
			Address:       "88 Cedar Ln",
			PreferredDate: "2026-03-05",
		}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	items, err := s.ListByEmail(context.Background(), "m.alvarez@example.com")
	if err != nil {
		t.Fatalf("ListByEmail error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(items))
	}
	if items[0].ServiceTitle != "Duct Cleaning" {
		t.Fatalf("expected newest first, got %q", items[0].ServiceTitle)
	}
}
