package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
)

type fakeNotifier struct {
	emails    []string
	smss      []string
	failPhone string
}

func (f *fakeNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	f.emails = append(f.emails, to)
	return nil
}

func (f *fakeNotifier) SendSMS(ctx context.Context, to, body string) error {
	if f.failPhone != "" && to == f.failPhone {
		return errors.New("sms gateway down")
	}
	f.smss = append(f.smss, to)
	return nil
}

func pendingReminder(id int64, channel string, scheduledFor time.Time) models.Reminder {
	return models.Reminder{
		ID:              id,
		BookingID:       7,
		CustomerName:    "James Okafor",
		CustomerEmail:   "j.okafor@example.com",
		CustomerPhone:   "+15035550177",
		ServiceTitle:    "Furnace Service",
		AppointmentDate: "2026-03-05 14:00",
		ReminderType:    models.ReminderType24h,
		Channel:         channel,
		Status:          models.ReminderStatusPending,
		ScheduledFor:    scheduledFor,
	}
}

func newTestEngine(repo Repository, notifier *fakeNotifier, now time.Time) *Engine {
	return NewEngine(repo, notifier, nil, discardLogger(), time.Minute).
		WithClock(func() time.Time { return now })
}

func TestProcessDueSelectsOnlyDueReminders(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 14, 0, 0, 0, loc)
	repo := newFakeRepo()
	repo.reminders = []models.Reminder{
		pendingReminder(1, models.ReminderChannelEmail, now.Add(-time.Minute)),
		pendingReminder(2, models.ReminderChannelSMS, now.Add(time.Hour)),
	}
	notifier := &fakeNotifier{}
	e := newTestEngine(repo, notifier, now)

	sent, err := e.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("ProcessDue error: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 sent, got %d", sent)
	}
	if repo.reminders[0].Status != models.ReminderStatusSent {
		t.Fatalf("due reminder not marked sent")
	}
	if repo.reminders[0].SentAt == nil {
		t.Fatalf("sentAt not set")
	}
	if repo.reminders[1].Status != models.ReminderStatusPending {
		t.Fatalf("future reminder must stay pending")
	}
	if len(notifier.emails) != 1 || notifier.emails[0] != "j.okafor@example.com" {
		t.Fatalf("unexpected emails: %v", notifier.emails)
	}
}

func TestProcessDueIsIdempotentAcrossSweeps(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 14, 0, 0, 0, loc)
	repo := newFakeRepo()
	repo.reminders = []models.Reminder{
		pendingReminder(1, models.ReminderChannelEmail, now.Add(-time.Minute)),
	}
	notifier := &fakeNotifier{}
	e := newTestEngine(repo, notifier, now)

	if sent, _ := e.ProcessDue(context.Background()); sent != 1 {
		t.Fatalf("first sweep expected 1 sent, got %d", sent)
	}
	firstSentAt := *repo.reminders[0].SentAt

	if sent, _ := e.ProcessDue(context.Background()); sent != 0 {
		t.Fatalf("second sweep must send nothing")
	}
	if len(notifier.emails) != 1 {
		t.Fatalf("reminder was re-sent: %v", notifier.emails)
	}
	if !repo.reminders[0].SentAt.Equal(firstSentAt) {
		t.Fatalf("sentAt mutated on second sweep")
	}
}

func TestProcessDueFailureIsolation(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 14, 0, 0, 0, loc)
	repo := newFakeRepo()
	failing := pendingReminder(1, models.ReminderChannelSMS, now.Add(-time.Minute))
	repo.reminders = []models.Reminder{
		failing,
		pendingReminder(2, models.ReminderChannelEmail, now.Add(-time.Minute)),
	}
	notifier := &fakeNotifier{failPhone: failing.CustomerPhone}
	e := newTestEngine(repo, notifier, now)

	sent, err := e.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("ProcessDue error: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 sent despite sms failure, got %d", sent)
	}
	if repo.reminders[0].Status != models.ReminderStatusPending {
		t.Fatalf("failed reminder must stay pending for retry")
	}
	if repo.reminders[1].Status != models.ReminderStatusSent {
		t.Fatalf("healthy reminder not processed after failure")
	}

	// Next sweep retries the failed one once the gateway recovers.
	notifier.failPhone = ""
	if sent, _ := e.ProcessDue(context.Background()); sent != 1 {
		t.Fatalf("retry sweep expected 1 sent, got %d", sent)
	}
	if repo.reminders[0].Status != models.ReminderStatusSent {
		t.Fatalf("retried reminder not marked sent")
	}
}

func TestProcessDueMarkSentFailureLeavesPending(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 14, 0, 0, 0, loc)
	repo := newFakeRepo()
	repo.reminders = []models.Reminder{
		pendingReminder(1, models.ReminderChannelEmail, now.Add(-time.Minute)),
	}
	repo.failMark[1] = true
	notifier := &fakeNotifier{}
	e := newTestEngine(repo, notifier, now)

	sent, err := e.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("ProcessDue error: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected 0 counted sends, got %d", sent)
	}
	if repo.reminders[0].Status != models.ReminderStatusPending {
		t.Fatalf("reminder must stay pending when mark-sent fails")
	}
}

func TestScenarioAdvancePastOnlyFirstOffset(t *testing.T) {
	loc := mustLoadLoc(t)
	bookedAt := time.Date(2026, 3, 4, 14, 0, 0, 0, loc)
	repo := newFakeRepo()
	s := newTestScheduler(repo, bookedAt, loc)

	// Tomorrow at the same time: both offsets are in the future.
	s.ScheduleForBooking(context.Background(), testBooking("2026-03-05 14:00"))
	if len(repo.reminders) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(repo.reminders))
	}

	// Advance past the 24h fire time but not the 1h one.
	sweepAt := time.Date(2026, 3, 4, 14, 30, 0, 0, loc)
	notifier := &fakeNotifier{}
	e := newTestEngine(repo, notifier, sweepAt)

	sent, err := e.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("ProcessDue error: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected exactly 1 sent, got %d", sent)
	}

	var sentCount, pendingCount int
	for _, r := range repo.reminders {
		switch r.Status {
		case models.ReminderStatusSent:
			sentCount++
			if r.ReminderType != models.ReminderType24h {
				t.Fatalf("wrong reminder dispatched: %q", r.ReminderType)
			}
		case models.ReminderStatusPending:
			pendingCount++
		}
	}
	if sentCount != 1 || pendingCount != 1 {
		t.Fatalf("expected 1 sent and 1 pending, got %d/%d", sentCount, pendingCount)
	}
}

func TestEngineStartStop(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	e := NewEngine(repo, notifier, nil, discardLogger(), 10*time.Millisecond)

	e.Start()
	time.Sleep(30 * time.Millisecond)
	e.Stop()

	// Stop must be safe to reason about: no sweeps run after it returns.
	before := len(repo.reminders)
	time.Sleep(30 * time.Millisecond)
	if len(repo.reminders) != before {
		t.Fatalf("sweep ran after Stop")
	}
}
