package http

import (
	"net/http"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
)

// AdminHandler serves the owner dashboard: moderation, audit log and stats.
type AdminHandler struct {
	CatalogService  *service.CatalogService
	ActivityService *service.ActivityService
	StatsService    *service.StatsService
}

// HandleModerateTool handles PUT /admin/tools/{id}/moderation
//
//	@Summary		Moderate a tool
//	@Description	Sets status and/or featured. Only the fields present change.
//	@Tags			Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Tool ID"
//	@Param			request	body		catalogapi.ModerationRequest	true	"Changes"
//	@Success		200		{object}	catalogapi.Tool
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		404		{object}	catalogapi.ErrorResponse	"No such tool"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/admin/tools/{id}/moderation [put].
func (h *AdminHandler) HandleModerateTool(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.ModerationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	in := service.ModerationInput{Featured: req.Featured}
	if req.Status != nil {
		st := domain.ToolStatus(*req.Status)
		in.Status = &st
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.CatalogService.ModerateTool(r.Context(), principal(r.Context()), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTool(t))
}

// HandleActivity handles GET /admin/activity
//
//	@Summary		Audit log
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Param			actor_id		query		string	false	"Acting user"
//	@Param			subject_type	query		string	false	"user, tool, category or review"
//	@Param			subject_id		query		string	false	"Subject"
//	@Param			action			query		string	false	"Action"
//	@Param			page			query		int		false	"Page, from 1"
//	@Param			per_page		query		int		false	"Page size, at most 100"
//	@Success		200				{object}	catalogapi.ActivityPage
//	@Failure		403				{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Router			/admin/activity [get].
func (h *AdminHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.ActivityService.List(r.Context(), principal(r.Context()), store.ActivityFilter{
		ActorID:     q.Get("actor_id"),
		SubjectType: q.Get("subject_type"),
		SubjectID:   q.Get("subject_id"),
		Action:      q.Get("action"),
		Page:        queryPage(r),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.ActivityPage{
		Data: mapSlice(page.Items, toActivity),
		Meta: pageMeta(page),
	})
}

// HandleStats handles GET /admin/stats
//
//	@Summary		Dashboard statistics
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	catalogapi.Stats
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Router			/admin/stats [get].
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	o, err := h.StatsService.Overview(r.Context(), principal(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStats(o))
}
