package notify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends plain-text email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender bounds every API call by timeout.
func NewResendSender(apiKey, from string, timeout time.Duration) (*ResendSender, error) {
	if apiKey == "" || from == "" {
		return nil, errors.New("notify: resend needs an API key and a from address")
	}
	hc := &http.Client{Timeout: timeout}
	return &ResendSender{client: resend.NewCustomClient(hc, apiKey), from: from}, nil
}

func (s *ResendSender) SendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return &DeliveryError{Channel: "email", Err: err}
	}
	return nil
}
