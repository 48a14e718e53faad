package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/cache"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/models"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/notifications"
)

// Engine is the recurring dispatcher: every interval it sweeps for due
// pending reminders, sends each over its channel and marks it sent.
// A single engine instance runs per deployment; the pending-status guard
// in MarkSent is the only dedup between sweeps.
type Engine struct {
	repo     Repository
	notifier notifications.Notifier
	cache    cache.Cache
	log      *slog.Logger
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
}

func NewEngine(repo Repository, notifier notifications.Notifier, c cache.Cache, log *slog.Logger, interval time.Duration) *Engine {
	return &Engine{
		repo:     repo,
		notifier: notifier,
		cache:    c,
		log:      log,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock replaces the engine's clock. Tests use it to pin "now".
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Start launches the periodic sweep. It must be called at most once.
func (e *Engine) Start() {
	e.stop = make(chan struct{})
	e.done = make(chan struct{})

	go func() {
		defer close(e.done)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		e.log.Info("reminder engine started", slog.Duration("interval", e.interval))
		for {
			select {
			case <-ticker.C:
				e.sweep()
			case <-e.stop:
				return
			}
		}
	}()
}

// Stop cancels the periodic sweep and waits for the current one to finish.
func (e *Engine) Stop() {
	if e.stop == nil {
		return
	}
	close(e.stop)
	<-e.done
	e.log.Info("reminder engine stopped")
}

// sweep shields the ticker loop: no panic or error may kill the timer.
func (e *Engine) sweep() {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error("reminder sweep panic", slog.Any("panic", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), e.interval)
	defer cancel()

	if _, err := e.ProcessDue(ctx); err != nil {
		e.log.Error("reminder sweep failed", slog.String("error", err.Error()))
	}
}

// ProcessDue performs one sweep and reports how many reminders were sent.
// Per-reminder failures are logged and skipped; a reminder that fails to
// send stays pending and is retried on the next sweep.
func (e *Engine) ProcessDue(ctx context.Context) (int, error) {
	now := e.now()
	due, err := e.repo.DuePending(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, rem := range due {
		if err := e.dispatch(ctx, rem); err != nil {
			e.log.Warn("reminder dispatch: send failed",
				slog.Int64("reminder_id", rem.ID),
				slog.String("channel", rem.Channel),
				slog.String("error", err.Error()),
			)
			continue
		}

		flipped, err := e.repo.MarkSent(ctx, rem.ID, e.now())
		if err != nil {
			e.log.Warn("reminder dispatch: mark sent failed",
				slog.Int64("reminder_id", rem.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if flipped {
			sent++
		}
	}

	if sent > 0 {
		if e.cache != nil {
			_ = e.cache.Delete(ctx, cache.StatsKey)
		}
		e.log.Info("reminder dispatch: processed", slog.Int("sent", sent), slog.Int("due", len(due)))
	}
	return sent, nil
}

func (e *Engine) dispatch(ctx context.Context, rem models.Reminder) error {
	body := fmt.Sprintf("Your %s appointment is coming up on %s", rem.ServiceTitle, rem.AppointmentDate)

	switch rem.Channel {
	case models.ReminderChannelSMS:
		return e.notifier.SendSMS(ctx, rem.CustomerPhone, body)
	default:
		return e.notifier.SendEmail(ctx, rem.CustomerEmail, "Appointment reminder", body)
	}
}
