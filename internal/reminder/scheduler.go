package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/cache"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

// Scheduler turns a committed booking into its future reminder rows.
type Scheduler struct {
	repo        Repository
	cache       cache.Cache
	log         *slog.Logger
	loc         *time.Location
	defaultHour int
	now         func() time.Time
}

func NewScheduler(repo Repository, c cache.Cache, log *slog.Logger, loc *time.Location, defaultHour int) *Scheduler {
	return &Scheduler{
		repo:        repo,
		cache:       c,
		log:         log,
		loc:         loc,
		defaultHour: defaultHour,
		now:         time.Now,
	}
}

// WithClock replaces the scheduler's clock. Tests use it to pin "now".
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// ScheduleForBooking persists up to two pending reminders: 24 hours before
// the appointment by email and 1 hour before by sms. Candidates already in
// the past are skipped. Failures are logged and never surface to the
// caller; the booking response must not depend on reminder scheduling.
func (s *Scheduler) ScheduleForBooking(ctx context.Context, b models.Booking) {
	appointment, err := ParseAppointmentDate(b.PreferredDate, s.loc, s.defaultHour)
	if err != nil {
		s.log.Warn("reminder schedule: invalid appointment date",
			slog.Int64("booking_id", b.ID),
			slog.String("preferred_date", b.PreferredDate),
		)
		return
	}

	now := s.now()
	candidates := []struct {
		reminderType string
		channel      string
		offset       time.Duration
	}{
		{models.ReminderType24h, models.ReminderChannelEmail, 24 * time.Hour},
		{models.ReminderType1h, models.ReminderChannelSMS, time.Hour},
	}

	created := 0
	for _, c := range candidates {
		fireAt := appointment.Add(-c.offset)
		if !fireAt.After(now) {
			continue
		}

		rem := models.Reminder{
			BookingID:       b.ID,
			CustomerName:    b.FullName,
			CustomerEmail:   b.Email,
			CustomerPhone:   b.Phone,
			ServiceTitle:    b.ServiceTitle,
			AppointmentDate: b.PreferredDate,
			ReminderType:    c.reminderType,
			Channel:         c.channel,
			Status:          models.ReminderStatusPending,
			ScheduledFor:    fireAt,
			CreatedAt:       now,
		}

		// One failed insert must not stop the other candidate.
		if _, err := s.repo.Create(ctx, rem); err != nil {
			s.log.Error("reminder schedule: insert failed",
				slog.Int64("booking_id", b.ID),
				slog.String("reminder_type", c.reminderType),
				slog.String("error", err.Error()),
			)
			continue
		}
		created++
	}

	// New pending rows change the stats snapshot; scheduling runs after
	// the booking handler's own invalidation, so it must delete again.
	if created > 0 && s.cache != nil {
		_ = s.cache.Delete(ctx, cache.StatsKey)
	}

	s.log.Info("reminder schedule: done",
		slog.Int64("booking_id", b.ID),
		slog.Int("created", created),
	)
}
