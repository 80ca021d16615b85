package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// LogSender writes outgoing emails to the log instead of delivering them.
// It stands in for Resend when no API key is configured.
type LogSender struct{}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the email and reports success.
func (s *LogSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	id := "log-" + uuid.NewString()
	slog.InfoContext(ctx, "Email delivery skipped, RESEND_API_KEY not set",
		"to", input.To,
		"subject", input.Subject,
		"message_id", id,
	)
	return &adapter.SendEmailResult{ResendID: id}, nil
}

var _ adapter.EmailSender = (*LogSender)(nil)
