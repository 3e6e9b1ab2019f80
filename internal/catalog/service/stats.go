package service

import (
	"context"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

type StatsService struct {
	Store store.Store
}

// Overview is owner only.
func (s *StatsService) Overview(ctx context.Context, actor domain.User) (domain.Overview, error) {
	if err := requireOwner(actor); err != nil {
		return domain.Overview{}, err
	}
	return s.Store.Stats().Overview(ctx)
}
