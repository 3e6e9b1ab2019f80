// Package notify delivers outbound messages (email and Telegram) and queues
// the ones nobody waits for.
package notify

import (
	"context"
	"errors"
	"fmt"
)

var ErrChannelDisabled = errors.New("notify: channel not configured")

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type TelegramSender interface {
	SendTelegramMessage(ctx context.Context, chatID, text string) error
}

// MessageSender is everything the 2FA engine and the approval flow need to
// reach a user.
type MessageSender interface {
	EmailSender
	TelegramSender
}

// DeliveryError wraps a failed send with the channel it went to.
type DeliveryError struct {
	Channel string // "email" or "telegram"
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notify: %s delivery failed: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Mux routes each channel to its own sender.
type Mux struct {
	Email    EmailSender
	Telegram TelegramSender
}

func (m Mux) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.Email == nil {
		return &DeliveryError{Channel: "email", Err: ErrChannelDisabled}
	}
	return m.Email.SendEmail(ctx, to, subject, body)
}

func (m Mux) SendTelegramMessage(ctx context.Context, chatID, text string) error {
	if m.Telegram == nil {
		return &DeliveryError{Channel: "telegram", Err: ErrChannelDisabled}
	}
	return m.Telegram.SendTelegramMessage(ctx, chatID, text)
}
