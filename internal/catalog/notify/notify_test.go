package notify_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/notify"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type recordingEmail struct {
	mu   sync.Mutex
	sent []notify.Email
	err  error
	gate chan struct{}
}

func (r *recordingEmail) SendEmail(_ context.Context, to, subject, body string) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notify.Email{To: to, Subject: subject, Body: body})
	return r.err
}

func (r *recordingEmail) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestMuxReportsDisabledChannels(t *testing.T) {
	ctx := context.Background()
	m := notify.Mux{}

	err := m.SendEmail(ctx, "a@x.io", "s", "b")
	var de *notify.DeliveryError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "email", de.Channel)
	require.ErrorIs(t, err, notify.ErrChannelDisabled)

	err = m.SendTelegramMessage(ctx, "1", "hi")
	require.ErrorAs(t, err, &de)
	require.Equal(t, "telegram", de.Channel)

	m.Email = notify.LogSender{}
	require.NoError(t, m.SendEmail(ctx, "a@x.io", "s", "b"))
}

func TestDispatcherDeliversAndDrainsOnStop(t *testing.T) {
	rec := &recordingEmail{err: errors.New("smtp down")}
	d := notify.NewDispatcher(rec, slogx.Discard(), 8, time.Second)
	d.Start()

	for range 5 {
		require.True(t, d.Enqueue(notify.Email{To: "a@x.io", Subject: "approved"}))
	}
	d.Stop()

	require.Equal(t, 5, rec.count(), "failures are logged, not retried, and nothing is lost on stop")
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	rec := &recordingEmail{gate: make(chan struct{})}
	d := notify.NewDispatcher(rec, slogx.Discard(), 1, time.Second)
	d.Start()

	// The first message is picked up by the worker and blocks on the gate,
	// the second fills the queue.
	require.True(t, d.Enqueue(notify.Email{To: "1"}))
	require.Eventually(t, func() bool { return d.Enqueue(notify.Email{To: "2"}) }, time.Second, time.Millisecond)
	require.False(t, d.Enqueue(notify.Email{To: "3"}))

	close(rec.gate)
	d.Stop()
	require.Equal(t, 2, rec.count())
}

func TestTelegramBotSender(t *testing.T) {
	var (
		mu     sync.Mutex
		chatID string
		text   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/botTOKEN/getMe":
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"catalog","username":"catalog_bot"}}`))
		case "/botTOKEN/sendMessage":
			mu.Lock()
			chatID, text = r.FormValue("chat_id"), r.FormValue("text")
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
	defer srv.Close()

	s := notify.NewTelegramBotSender("TOKEN", srv.URL+"/bot%s/%s", 2*time.Second)

	require.NoError(t, s.SendTelegramMessage(context.Background(), "42", "Your code is 123456"))
	mu.Lock()
	require.Equal(t, "42", chatID)
	require.Equal(t, "Your code is 123456", text)
	mu.Unlock()

	err := s.SendTelegramMessage(context.Background(), "not-a-number", "x")
	var de *notify.DeliveryError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "telegram", de.Channel)
}

func TestTelegramBotSenderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	url := srv.URL
	srv.Close()

	s := notify.NewTelegramBotSender("TOKEN", url+"/bot%s/%s", 500*time.Millisecond)
	err := s.SendTelegramMessage(context.Background(), "42", "x")

	var de *notify.DeliveryError
	require.ErrorAs(t, err, &de)
}

func TestNewResendSenderRequiresConfig(t *testing.T) {
	_, err := notify.NewResendSender("", "from@x.io", time.Second)
	require.Error(t, err)

	s, err := notify.NewResendSender("re_test", "from@x.io", time.Second)
	require.NoError(t, err)
	require.NotNil(t, s)
}
