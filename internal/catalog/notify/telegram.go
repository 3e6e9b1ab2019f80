package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramBotSender sends messages through the Telegram Bot API.
//
// The bot handle is created on first use: constructing it calls getMe, and
// a Telegram outage at startup must not keep the service from booting.
type TelegramBotSender struct {
	token    string
	endpoint string
	client   *http.Client

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

// NewTelegramBotSender builds a sender. An empty endpoint means the public
// Bot API.
func NewTelegramBotSender(token, endpoint string, timeout time.Duration) *TelegramBotSender {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return &TelegramBotSender{
		token:    token,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *TelegramBotSender) botAPI() (*tgbotapi.BotAPI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bot != nil {
		return s.bot, nil
	}
	bot, err := tgbotapi.NewBotAPIWithClient(s.token, s.endpoint, s.client)
	if err != nil {
		return nil, err
	}
	s.bot = bot
	return bot, nil
}

// SendTelegramMessage sends text to chatID. The Bot API client has no
// context support, so the deadline comes from the http.Client timeout; a
// context that is already done is still honoured.
func (s *TelegramBotSender) SendTelegramMessage(ctx context.Context, chatID, text string) error {
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Channel: "telegram", Err: err}
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return &DeliveryError{Channel: "telegram", Err: fmt.Errorf("invalid chat id %q", chatID)}
	}

	bot, err := s.botAPI()
	if err != nil {
		return &DeliveryError{Channel: "telegram", Err: err}
	}

	if _, err := bot.Send(tgbotapi.NewMessage(id, text)); err != nil {
		return &DeliveryError{Channel: "telegram", Err: err}
	}
	return nil
}
