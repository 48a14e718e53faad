package notifications

import (
	"context"
	"log/slog"
)

// Notifier delivers reminder messages. Real delivery is out of scope for
// this backend; the log notifier stands in for the messaging provider.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}

type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	n.log.Info("reminder email",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

func (n *LogNotifier) SendSMS(ctx context.Context, to, body string) error {
	n.log.Info("reminder sms",
		slog.String("to", to),
		slog.String("body", body),
	)
	return nil
}
