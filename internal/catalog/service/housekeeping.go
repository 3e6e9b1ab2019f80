package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

// Purger is a code store that keeps expired entries in memory until swept.
type Purger interface {
	Purge() int
}

// HousekeepingService periodically removes expired sessions and, for the
// in-memory code store, expired codes.
type HousekeepingService struct {
	Store    store.Store
	Codes    Purger // nil when the code store expires keys itself
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults the interval to one hour.
func NewHousekeepingService(store store.Store, codes Purger, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Codes:    codes,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a sweep immediately and then once per interval.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup runs each sweep independently; one failing does not skip the rest.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()

	sessions, err := s.Store.Sessions().DeleteExpiredSessions(ctx, nowFrom(s.Now))
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	}

	var codes int
	if s.Codes != nil {
		codes = s.Codes.Purge()
	}

	s.Logger.Info("housekeeping cleanup completed", "expired_sessions", sessions, "expired_codes", codes)
}
