package notify

import (
	"context"
	"log/slog"
	"time"
)

// Email is a queued, fire-and-forget message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Dispatcher sends queued email on a background goroutine. Enqueue never
// blocks; when the queue is full the message is dropped with a warning.
type Dispatcher struct {
	Sender  EmailSender
	Logger  *slog.Logger
	Timeout time.Duration

	queue  chan Email
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewDispatcher(sender EmailSender, logger *slog.Logger, size int, timeout time.Duration) *Dispatcher {
	if size <= 0 {
		size = 64
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		Sender:  sender,
		Logger:  logger,
		Timeout: timeout,
		queue:   make(chan Email, size),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Enqueue reports whether the message was accepted.
func (d *Dispatcher) Enqueue(m Email) bool {
	select {
	case d.queue <- m:
		return true
	default:
		d.Logger.Warn("notification queue full, dropping email", "to", m.To, "subject", m.Subject)
		return false
	}
}

func (d *Dispatcher) Start() {
	go d.run()
	d.Logger.Info("notification dispatcher started", "queue", cap(d.queue))
}

// Stop sends whatever is already queued, then returns.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	<-d.doneCh
	d.Logger.Info("notification dispatcher stopped")
}

func (d *Dispatcher) run() {
	defer close(d.doneCh)
	for {
		select {
		case m := <-d.queue:
			d.send(m)
		case <-d.stopCh:
			for {
				select {
				case m := <-d.queue:
					d.send(m)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) send(m Email) {
	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()

	if err := d.Sender.SendEmail(ctx, m.To, m.Subject, m.Body); err != nil {
		d.Logger.Warn("notification delivery failed", "to", m.To, "subject", m.Subject, "error", err)
	}
}
