package notify

import (
	"context"

	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

// LogSender writes messages to the log instead of sending them. It stands in
// for unconfigured channels in development.
type LogSender struct{}

func (LogSender) SendEmail(ctx context.Context, to, subject, body string) error {
	slogx.FromContext(ctx).Info("email (log sender)", "to", to, "subject", subject, "body", body)
	return nil
}

func (LogSender) SendTelegramMessage(ctx context.Context, chatID, text string) error {
	slogx.FromContext(ctx).Info("telegram (log sender)", "chat_id", chatID, "text", text)
	return nil
}
