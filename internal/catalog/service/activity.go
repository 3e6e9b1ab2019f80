package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

// ActivityService is the append-only audit trail.
type ActivityService struct {
	Store store.Store
	Now   func() time.Time
}

// Record appends a. ID and CreatedAt are filled in when empty.
func (s *ActivityService) Record(ctx context.Context, a domain.Activity) error {
	return appendActivity(ctx, s.Store.Activities(), nowFrom(s.Now), a)
}

// recordBestEffort logs instead of failing. It is for paths where the
// audited change has already been committed.
func (s *ActivityService) recordBestEffort(ctx context.Context, a domain.Activity) {
	if err := s.Record(ctx, a); err != nil {
		slogx.FromContext(ctx).Error("failed to record activity",
			"action", a.Action, "subject_type", a.SubjectType, "subject_id", a.SubjectID, "error", err)
	}
}

// List is owner only, newest first.
func (s *ActivityService) List(ctx context.Context, actor domain.User, f store.ActivityFilter) (domain.Paged[domain.Activity], error) {
	if err := requireOwner(actor); err != nil {
		return domain.Paged[domain.Activity]{}, err
	}
	f.Page = f.Page.Normalize()
	return s.Store.Activities().ListActivities(ctx, f)
}

// appendActivity writes through whichever repo it is given, so callers in a
// transaction pass tx.Activities().
func appendActivity(ctx context.Context, repo store.Activities, now time.Time, a domain.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.ID == "" {
		a.ID = idx.NewAt(a.CreatedAt).String()
	}
	if err := repo.CreateActivity(ctx, a); err != nil {
		return fmt.Errorf("record %s %s: %w", a.Action, a.SubjectType, err)
	}
	return nil
}

// snapshot renders v as JSON for the before/after columns.
func snapshot(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

type userSnapshot struct {
	Role   domain.Role       `json:"role"`
	Status domain.UserStatus `json:"status"`
}

func snapshotUser(u domain.User) string {
	return snapshot(userSnapshot{Role: u.Role, Status: u.Status})
}

type toolSnapshot struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	URL              string            `json:"url"`
	DocumentationURL string            `json:"documentation_url,omitempty"`
	Status           domain.ToolStatus `json:"status"`
	Featured         bool              `json:"featured"`
	CategoryIDs      []string          `json:"category_ids"`
}

func snapshotTool(t domain.Tool) string {
	return snapshot(toolSnapshot{
		Name:             t.Name,
		Description:      t.Description,
		URL:              t.URL,
		DocumentationURL: t.DocumentationURL,
		Status:           t.Status,
		Featured:         t.Featured,
		CategoryIDs:      t.CategoryIDs(),
	})
}

type categorySnapshot struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func snapshotCategory(c domain.Category) string {
	return snapshot(categorySnapshot{Name: c.Name, Description: c.Description})
}
