package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

type ToolInput struct {
	Name             string   `json:"name" validate:"required,max=255"`
	Description      string   `json:"description" validate:"required,max=5000"`
	URL              string   `json:"url" validate:"required,http_url,max=2048"`
	DocumentationURL string   `json:"documentation_url" validate:"omitempty,http_url,max=2048"`
	CategoryIDs      []string `json:"category_ids" validate:"required,min=1,max=20,dive,required"`
}

type ModerationInput struct {
	Status   *domain.ToolStatus `json:"status" validate:"omitempty,oneof=pending_review active inactive"`
	Featured *bool              `json:"featured"`
}

// ToolQuery is a public listing request. Status is ignored for non-owners,
// who only ever see active tools.
type ToolQuery struct {
	CategoryID string
	Status     domain.ToolStatus
	Search     string
	Featured   *bool
	Sort       domain.ToolSort
	domain.Page
}

func (s *CatalogService) prepareTool(ctx context.Context, in *ToolInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.URL = strings.TrimSpace(in.URL)
	in.DocumentationURL = strings.TrimSpace(in.DocumentationURL)
	if err := validateInput(*in); err != nil {
		return err
	}

	slices.Sort(in.CategoryIDs)
	in.CategoryIDs = slices.Compact(in.CategoryIDs)

	n, err := s.Store.Categories().CountCategories(ctx, in.CategoryIDs)
	if err != nil {
		return err
	}
	if n != len(in.CategoryIDs) {
		return fieldError("category_ids", "The selected category ids are invalid.")
	}
	return nil
}

func categoryRefs(ids []string) []domain.Category {
	cats := make([]domain.Category, len(ids))
	for i, id := range ids {
		cats[i] = domain.Category{ID: id}
	}
	return cats
}

// CreateTool submits a tool. Owners publish directly; everyone else goes
// through review.
func (s *CatalogService) CreateTool(ctx context.Context, actor domain.User, in ToolInput) (domain.Tool, error) {
	if err := requireApproved(actor); err != nil {
		return domain.Tool{}, err
	}
	if err := s.prepareTool(ctx, &in); err != nil {
		return domain.Tool{}, err
	}

	status := domain.ToolPendingReview
	if actor.IsApprovedOwner() {
		status = domain.ToolActive
	}

	now := nowFrom(s.Now)
	t := domain.Tool{
		ID:               idx.NewAt(now).String(),
		Name:             in.Name,
		Slug:             domain.Slugify(in.Name),
		Description:      in.Description,
		URL:              in.URL,
		DocumentationURL: in.DocumentationURL,
		CreatedBy:        actor.ID,
		Status:           status,
		Categories:       categoryRefs(in.CategoryIDs),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var created domain.Tool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tools().CreateTool(ctx, t); err != nil {
			return err
		}
		if err := appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionCreated,
			SubjectType: domain.SubjectTool,
			SubjectID:   t.ID,
			Description: fmt.Sprintf("Submitted tool %s", t.Name),
			After:       snapshotTool(t),
		}); err != nil {
			return err
		}
		var err error
		created, err = tx.Tools().GetTool(ctx, t.ID)
		return err
	})
	if err != nil {
		return domain.Tool{}, fmt.Errorf("create tool: %w", err)
	}

	slogx.FromContext(ctx).Info("tool submitted", "tool_id", t.ID, "status", status)
	return created, nil
}

// UpdateTool edits everything except status and featured.
func (s *CatalogService) UpdateTool(ctx context.Context, actor domain.User, id string, in ToolInput) (domain.Tool, error) {
	if err := requireApproved(actor); err != nil {
		return domain.Tool{}, err
	}
	current, err := s.Store.Tools().GetTool(ctx, id)
	if err != nil {
		return domain.Tool{}, mapStoreErr(err)
	}
	if !canEditTool(actor, current) {
		return domain.Tool{}, ErrUnauthorized
	}
	if err := s.prepareTool(ctx, &in); err != nil {
		return domain.Tool{}, err
	}

	next := current
	next.Name = in.Name
	next.Slug = domain.Slugify(in.Name)
	next.Description = in.Description
	next.URL = in.URL
	next.DocumentationURL = in.DocumentationURL
	next.Categories = categoryRefs(in.CategoryIDs)

	return s.saveTool(ctx, actor, current, next, domain.ActionUpdated, fmt.Sprintf("Updated tool %s", next.Name))
}

// ModerateTool changes status and/or featured. Moving to active is logged
// as an approval and moving to inactive as a rejection.
func (s *CatalogService) ModerateTool(ctx context.Context, actor domain.User, id string, in ModerationInput) (domain.Tool, error) {
	if err := requireOwner(actor); err != nil {
		return domain.Tool{}, err
	}
	if err := validateInput(in); err != nil {
		return domain.Tool{}, err
	}
	if in.Status == nil && in.Featured == nil {
		return domain.Tool{}, fieldError("status", "The status field is required when featured is not present.")
	}

	current, err := s.Store.Tools().GetTool(ctx, id)
	if err != nil {
		return domain.Tool{}, mapStoreErr(err)
	}

	next := current
	if in.Status != nil {
		next.Status = *in.Status
	}
	if in.Featured != nil {
		next.Featured = *in.Featured
	}
	if next.Status == current.Status && next.Featured == current.Featured {
		return current, nil
	}

	action := domain.ActionUpdated
	desc := fmt.Sprintf("Updated moderation of tool %s", next.Name)
	if next.Status != current.Status {
		switch next.Status {
		case domain.ToolActive:
			action, desc = domain.ActionApproved, fmt.Sprintf("Approved tool %s", next.Name)
		case domain.ToolInactive:
			action, desc = domain.ActionRejected, fmt.Sprintf("Deactivated tool %s", next.Name)
		}
	}

	return s.saveTool(ctx, actor, current, next, action, desc)
}

func (s *CatalogService) saveTool(ctx context.Context, actor domain.User, before, next domain.Tool, action, desc string) (domain.Tool, error) {
	now := nowFrom(s.Now)
	next.UpdatedAt = now

	var saved domain.Tool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tools().UpdateTool(ctx, next); err != nil {
			return mapStoreErr(err)
		}
		if err := appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      action,
			SubjectType: domain.SubjectTool,
			SubjectID:   next.ID,
			Description: desc,
			Before:      snapshotTool(before),
			After:       snapshotTool(next),
		}); err != nil {
			return err
		}
		var err error
		saved, err = tx.Tools().GetTool(ctx, next.ID)
		return err
	})
	if err != nil {
		return domain.Tool{}, err
	}
	return saved, nil
}

// DeleteTool soft-deletes.
func (s *CatalogService) DeleteTool(ctx context.Context, actor domain.User, id string) error {
	if err := requireApproved(actor); err != nil {
		return err
	}
	t, err := s.Store.Tools().GetTool(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if !canEditTool(actor, t) {
		return ErrUnauthorized
	}

	now := nowFrom(s.Now)
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tools().SoftDeleteTool(ctx, id, now); err != nil {
			return mapStoreErr(err)
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionDeleted,
			SubjectType: domain.SubjectTool,
			SubjectID:   id,
			Description: fmt.Sprintf("Deleted tool %s", t.Name),
			Before:      snapshotTool(t),
		})
	})
}

// visibleTool loads a tool the viewer is allowed to see. Hidden tools look
// exactly like missing ones.
func (s *CatalogService) visibleTool(ctx context.Context, viewer domain.User, id string) (domain.Tool, error) {
	t, err := s.Store.Tools().GetTool(ctx, id)
	if err != nil {
		return domain.Tool{}, mapStoreErr(err)
	}
	if !canViewTool(viewer, t) {
		return domain.Tool{}, ErrNotFound
	}
	return t, nil
}

// GetTool returns a tool and counts the view.
func (s *CatalogService) GetTool(ctx context.Context, viewer domain.User, id string) (domain.Tool, error) {
	t, err := s.visibleTool(ctx, viewer, id)
	if err != nil {
		return domain.Tool{}, err
	}

	if viewer.ID != "" {
		liked, err := s.Store.Likes().HasLiked(ctx, t.ID, viewer.ID)
		if err != nil {
			return domain.Tool{}, err
		}
		t.LikedByViewer = liked
	}

	if s.Views != nil && !s.Views.Record(t.ID) {
		slogx.FromContext(ctx).Debug("view not counted, queue full", "tool_id", t.ID)
	}
	return t, nil
}

func (s *CatalogService) ListTools(ctx context.Context, viewer domain.User, q ToolQuery) (domain.Paged[domain.Tool], error) {
	if q.Sort == "" {
		q.Sort = domain.SortNewest
	}
	if !q.Sort.Valid() {
		return domain.Paged[domain.Tool]{}, fieldError("sort", "The selected sort is invalid.")
	}
	if q.Status != "" && !q.Status.Valid() {
		return domain.Paged[domain.Tool]{}, fieldError("status", "The selected status is invalid.")
	}

	status := domain.ToolActive
	if viewer.IsApprovedOwner() {
		status = q.Status
	}

	return s.Store.Tools().ListTools(ctx, store.ToolFilter{
		CategoryID: q.CategoryID,
		Status:     status,
		Search:     strings.TrimSpace(q.Search),
		Featured:   q.Featured,
		Sort:       q.Sort,
		Page:       q.Page.Normalize(),
	})
}
