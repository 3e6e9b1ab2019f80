package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
)

// mapSlice never returns nil, so empty lists encode as [].
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func toUser(u domain.User) catalogapi.User {
	t := u.TwoFactorType
	if t == "" {
		t = domain.TwoFactorNone
	}
	return catalogapi.User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		DisplayRole:      string(u.DisplayRole()),
		Status:           string(u.Status),
		TwoFactorEnabled: u.TwoFactorEnabled,
		TwoFactorType:    string(t),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func toCategory(c domain.Category) catalogapi.Category {
	return catalogapi.Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ToolsCount:  c.ToolsCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toTool(t domain.Tool) catalogapi.Tool {
	return catalogapi.Tool{
		ID:               t.ID,
		Name:             t.Name,
		Slug:             t.Slug,
		Description:      t.Description,
		URL:              t.URL,
		DocumentationURL: t.DocumentationURL,
		CreatedBy:        t.CreatedBy,
		Status:           string(t.Status),
		Featured:         t.Featured,
		Categories:       mapSlice(t.Categories, toCategory),
		LikesCount:       t.LikesCount,
		Views:            t.Views,
		ReviewsCount:     t.ReviewsCount,
		AvgRating:        t.AvgRating,
		LikedByViewer:    t.LikedByViewer,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toReview(r domain.Review) catalogapi.Review {
	return catalogapi.Review{
		ID:        r.ID,
		ToolID:    r.ToolID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func rawJSON(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return nil
	}
	return json.RawMessage(s)
}

func toActivity(a domain.Activity) catalogapi.Activity {
	return catalogapi.Activity{
		ID:          a.ID,
		ActorID:     a.ActorID,
		Action:      a.Action,
		SubjectType: a.SubjectType,
		SubjectID:   a.SubjectID,
		Description: a.Description,
		Before:      rawJSON(a.Before),
		After:       rawJSON(a.After),
		CreatedAt:   a.CreatedAt,
	}
}

func countsByName[K ~string](m map[K]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func toStats(o domain.Overview) catalogapi.Stats {
	return catalogapi.Stats{
		UsersByStatus:   countsByName(o.UsersByStatus),
		UsersByRole:     countsByName(o.UsersByRole),
		ToolsByStatus:   countsByName(o.ToolsByStatus),
		TotalUsers:      o.TotalUsers,
		TotalTools:      o.TotalTools,
		TotalCategories: o.TotalCategories,
		TotalReviews:    o.TotalReviews,
		TotalLikes:      o.TotalLikes,
		TotalViews:      o.TotalViews,
	}
}

func pageMeta[T any](p domain.Paged[T]) catalogapi.PageMeta {
	return catalogapi.PageMeta{
		Page:     p.Page,
		PerPage:  p.PerPage,
		Total:    p.Total,
		LastPage: p.LastPage(),
	}
}

// queryPage reads page and per_page. Bad values fall back to the defaults.
// pathID reads the {id} path value. Every record id is a ULID, so anything
// else is answered with 404 without touching the store.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, service.ErrNotFound)
		return "", false
	}
	return id.String(), true
}

func queryPage(r *http.Request) domain.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return domain.Page{Page: page, PerPage: perPage}.Normalize()
}

// queryBool reads an optional boolean. Absent is nil.
func queryBool(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &service.ValidationError{Fields: map[string]string{key: "The " + key + " field must be true or false."}}
	}
	return &v, nil
}
