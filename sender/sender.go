package sender

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}

// LogSender writes notifications to the log instead of delivering them.
// Used when SMTP is not configured (local development, tests).
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	s.logger.Info("email notification (log sender)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return SendResult{MessageID: "log-" + time.Now().Format("20060102150405.000000000"), SentAt: time.Now()}, nil
}
