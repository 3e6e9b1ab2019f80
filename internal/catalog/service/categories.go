package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/codestore"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

const (
	// categoriesCacheKey is the only cache entry category writes touch.
	categoriesCacheKey = "catalog:categories:v1"
	categoriesCacheTTL = 10 * time.Minute
)

// ViewRecorder counts tool views off the request path.
type ViewRecorder interface {
	Record(toolID string) bool
}

// CatalogService covers categories, tools, reviews and likes.
type CatalogService struct {
	Store store.Store
	Cache codestore.Store
	Views ViewRecorder
	Now   func() time.Time
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// ListCategories is public and served from cache when possible. Cache
// failures fall through to the store.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	log := slogx.FromContext(ctx)

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, categoriesCacheKey)
		switch {
		case err == nil:
			var cats []domain.Category
			if err := json.Unmarshal(raw, &cats); err == nil {
				return cats, nil
			}
			log.Warn("discarding unreadable category cache entry")
		case !errors.Is(err, codestore.ErrMiss):
			log.Warn("category cache read failed", "error", err)
		}
	}

	cats, err := s.Store.Categories().ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(cats); err == nil {
			if err := s.Cache.Put(ctx, categoriesCacheKey, raw, categoriesCacheTTL); err != nil {
				log.Warn("category cache write failed", "error", err)
			}
		}
	}
	return cats, nil
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, categoriesCacheKey); err != nil {
		slogx.FromContext(ctx).Warn("category cache invalidation failed", "error", err)
	}
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	c, err := s.Store.Categories().GetCategory(ctx, id)
	return c, mapStoreErr(err)
}

func prepareCategory(in *CategoryInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateInput(*in); err != nil {
		return "", err
	}
	slug := domain.Slugify(in.Name)
	if slug == "" {
		return "", fieldError("name", "The name must contain at least one letter or digit.")
	}
	return slug, nil
}

var errCategoryTaken = conflict("A category with this name already exists.")

func (s *CatalogService) CreateCategory(ctx context.Context, actor domain.User, in CategoryInput) (domain.Category, error) {
	if err := requireOwner(actor); err != nil {
		return domain.Category{}, err
	}
	slug, err := prepareCategory(&in)
	if err != nil {
		return domain.Category{}, err
	}

	now := nowFrom(s.Now)
	c := domain.Category{
		ID:          idx.NewAt(now).String(),
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Categories().CreateCategory(ctx, c); err != nil {
			return err
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionCreated,
			SubjectType: domain.SubjectCategory,
			SubjectID:   c.ID,
			Description: fmt.Sprintf("Created category %s", c.Name),
			After:       snapshotCategory(c),
		})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Category{}, errCategoryTaken
	}
	if err != nil {
		return domain.Category{}, err
	}

	s.invalidateCategories(ctx)
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actor domain.User, id string, in CategoryInput) (domain.Category, error) {
	if err := requireOwner(actor); err != nil {
		return domain.Category{}, err
	}
	slug, err := prepareCategory(&in)
	if err != nil {
		return domain.Category{}, err
	}

	now := nowFrom(s.Now)
	var updated domain.Category
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		before, err := tx.Categories().GetCategory(ctx, id)
		if err != nil {
			return mapStoreErr(err)
		}
		updated = before
		updated.Name = in.Name
		updated.Slug = slug
		updated.Description = in.Description
		updated.UpdatedAt = now
		if err := tx.Categories().UpdateCategory(ctx, updated); err != nil {
			return err
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionUpdated,
			SubjectType: domain.SubjectCategory,
			SubjectID:   id,
			Description: fmt.Sprintf("Updated category %s", updated.Name),
			Before:      snapshotCategory(before),
			After:       snapshotCategory(updated),
		})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Category{}, errCategoryTaken
	}
	if err != nil {
		return domain.Category{}, err
	}

	s.invalidateCategories(ctx)
	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor domain.User, id string) error {
	if err := requireOwner(actor); err != nil {
		return err
	}

	now := nowFrom(s.Now)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Categories().GetCategory(ctx, id)
		if err != nil {
			return mapStoreErr(err)
		}
		if err := tx.Categories().DeleteCategory(ctx, id); err != nil {
			return mapStoreErr(err)
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionDeleted,
			SubjectType: domain.SubjectCategory,
			SubjectID:   id,
			Description: fmt.Sprintf("Deleted category %s", c.Name),
			Before:      snapshotCategory(c),
		})
	})
	if err != nil {
		return err
	}

	s.invalidateCategories(ctx)
	return nil
}
