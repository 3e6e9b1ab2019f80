package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

// ViewCounter moves view counting off the request path. Views that arrive
// while the queue is full are dropped.
type ViewCounter struct {
	Store  store.Store
	Logger *slog.Logger

	queue  chan string
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewViewCounter(store store.Store, logger *slog.Logger, size int) *ViewCounter {
	if size <= 0 {
		size = 256
	}
	return &ViewCounter{
		Store:  store,
		Logger: logger,
		queue:  make(chan string, size),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Record reports whether the view was queued.
func (c *ViewCounter) Record(toolID string) bool {
	select {
	case c.queue <- toolID:
		return true
	default:
		return false
	}
}

func (c *ViewCounter) Start() {
	go c.run()
	c.Logger.Info("view counter started", "queue", cap(c.queue))
}

// Stop flushes whatever is queued, then returns.
func (c *ViewCounter) Stop() {
	close(c.stopCh)
	<-c.doneCh
	c.Logger.Info("view counter stopped")
}

func (c *ViewCounter) run() {
	defer close(c.doneCh)
	for {
		select {
		case id := <-c.queue:
			c.flush(id)
		case <-c.stopCh:
			for {
				select {
				case id := <-c.queue:
					c.flush(id)
				default:
					return
				}
			}
		}
	}
}

// flush folds everything already queued into one update per tool.
func (c *ViewCounter) flush(first string) {
	counts := map[string]int64{first: 1}
drain:
	for {
		select {
		case id := <-c.queue:
			counts[id]++
		default:
			break drain
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for id, n := range counts {
		if err := c.Store.Tools().IncrementViews(ctx, id, n); err != nil {
			c.Logger.Warn("failed to count tool views", "tool_id", id, "views", n, "error", err)
		}
	}
}
