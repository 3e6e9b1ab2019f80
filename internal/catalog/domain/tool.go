package domain

import (
	"slices"
	"time"
)

type ToolStatus string

const (
	ToolPendingReview ToolStatus = "pending_review"
	ToolActive        ToolStatus = "active"
	ToolInactive      ToolStatus = "inactive"
)

var allToolStatuses = []ToolStatus{ToolPendingReview, ToolActive, ToolInactive}

func ToolStatuses() []ToolStatus { return slices.Clone(allToolStatuses) }

func (s ToolStatus) Valid() bool { return slices.Contains(allToolStatuses, s) }

type Tool struct {
	ID               string
	Name             string
	Slug             string
	Description      string
	URL              string
	DocumentationURL string
	CreatedBy        string
	Status           ToolStatus
	Featured         bool

	Categories []Category

	LikesCount   int64
	Views        int64
	ReviewsCount int64
	AvgRating    float64

	// LikedByViewer is filled per request when the viewer is known.
	LikedByViewer bool

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryIDs returns the ids of the tool's categories in order.
func (t Tool) CategoryIDs() []string {
	ids := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		ids[i] = c.ID
	}
	return ids
}

// ToolSort names a listing order.
type ToolSort string

const (
	SortNewest  ToolSort = "newest"
	SortPopular ToolSort = "popular"
	SortRating  ToolSort = "rating"
	SortViews   ToolSort = "views"
)

func (s ToolSort) Valid() bool {
	switch s {
	case SortNewest, SortPopular, SortRating, SortViews:
		return true
	}
	return false
}

type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	ToolsCount  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Review struct {
	ID        string
	ToolID    string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
