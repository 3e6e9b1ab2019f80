package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
)

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// LikeState is the viewer's like status after Like or Unlike.
type LikeState struct {
	Liked      bool
	LikesCount int64
}

var errAlreadyReviewed = conflict("You have already reviewed this tool. Update your existing review instead.")

func (s *CatalogService) ListReviews(ctx context.Context, viewer domain.User, toolID string, p domain.Page) (domain.Paged[domain.Review], error) {
	if _, err := s.visibleTool(ctx, viewer, toolID); err != nil {
		return domain.Paged[domain.Review]{}, err
	}
	return s.Store.Reviews().ListReviews(ctx, toolID, p.Normalize())
}

// CreateReview allows one review per user and tool.
func (s *CatalogService) CreateReview(ctx context.Context, actor domain.User, toolID string, in ReviewInput) (domain.Review, error) {
	if err := requireApproved(actor); err != nil {
		return domain.Review{}, err
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateInput(in); err != nil {
		return domain.Review{}, err
	}
	t, err := s.visibleTool(ctx, actor, toolID)
	if err != nil {
		return domain.Review{}, err
	}

	now := nowFrom(s.Now)
	r := domain.Review{
		ID:        idx.NewAt(now).String(),
		ToolID:    t.ID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Reviews().CreateReview(ctx, r); err != nil {
			return err
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionCreated,
			SubjectType: domain.SubjectReview,
			SubjectID:   r.ID,
			Description: fmt.Sprintf("Reviewed %s with %d stars", t.Name, r.Rating),
		})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Review{}, errAlreadyReviewed
	}
	if err != nil {
		return domain.Review{}, fmt.Errorf("create review: %w", err)
	}
	return r, nil
}

// UpdateReview is for the author only.
func (s *CatalogService) UpdateReview(ctx context.Context, actor domain.User, id string, in ReviewInput) (domain.Review, error) {
	if err := requireApproved(actor); err != nil {
		return domain.Review{}, err
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateInput(in); err != nil {
		return domain.Review{}, err
	}

	r, err := s.Store.Reviews().GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, mapStoreErr(err)
	}
	if r.UserID != actor.ID {
		return domain.Review{}, ErrUnauthorized
	}

	before := r
	now := nowFrom(s.Now)
	r.Rating = in.Rating
	r.Comment = in.Comment
	r.UpdatedAt = now

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Reviews().UpdateReview(ctx, r); err != nil {
			return mapStoreErr(err)
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionUpdated,
			SubjectType: domain.SubjectReview,
			SubjectID:   r.ID,
			Description: "Updated review",
			Before:      snapshot(map[string]any{"rating": before.Rating, "comment": before.Comment}),
			After:       snapshot(map[string]any{"rating": r.Rating, "comment": r.Comment}),
		})
	})
	if err != nil {
		return domain.Review{}, err
	}
	return r, nil
}

// DeleteReview is for the author, or any approved owner.
func (s *CatalogService) DeleteReview(ctx context.Context, actor domain.User, id string) error {
	if err := requireApproved(actor); err != nil {
		return err
	}
	r, err := s.Store.Reviews().GetReview(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if r.UserID != actor.ID && !actor.IsApprovedOwner() {
		return ErrUnauthorized
	}

	desc := "Deleted review"
	if r.UserID != actor.ID {
		desc = fmt.Sprintf("Removed review by %s", r.UserName)
	}

	now := nowFrom(s.Now)
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Reviews().DeleteReview(ctx, id); err != nil {
			return mapStoreErr(err)
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionDeleted,
			SubjectType: domain.SubjectReview,
			SubjectID:   id,
			Description: desc,
			Before:      snapshot(map[string]any{"tool_id": r.ToolID, "rating": r.Rating, "comment": r.Comment}),
		})
	})
}

// Like is idempotent. The row and the counter change together.
func (s *CatalogService) Like(ctx context.Context, actor domain.User, toolID string) (LikeState, error) {
	return s.setLike(ctx, actor, toolID, true)
}

// Unlike is idempotent.
func (s *CatalogService) Unlike(ctx context.Context, actor domain.User, toolID string) (LikeState, error) {
	return s.setLike(ctx, actor, toolID, false)
}

func (s *CatalogService) setLike(ctx context.Context, actor domain.User, toolID string, like bool) (LikeState, error) {
	if err := requireApproved(actor); err != nil {
		return LikeState{}, err
	}
	if _, err := s.visibleTool(ctx, actor, toolID); err != nil {
		return LikeState{}, err
	}

	now := nowFrom(s.Now)
	state := LikeState{Liked: like}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var (
			changed bool
			err     error
			delta   int64 = 1
		)
		if like {
			changed, err = tx.Likes().AddLike(ctx, toolID, actor.ID, now)
		} else {
			changed, err = tx.Likes().RemoveLike(ctx, toolID, actor.ID)
			delta = -1
		}
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Tools().AdjustLikes(ctx, toolID, delta); err != nil {
				return mapStoreErr(err)
			}
		}
		t, err := tx.Tools().GetTool(ctx, toolID)
		if err != nil {
			return mapStoreErr(err)
		}
		state.LikesCount = t.LikesCount
		return nil
	})
	if err != nil {
		return LikeState{}, err
	}
	return state, nil
}
