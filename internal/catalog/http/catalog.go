package http

import (
	"net/http"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
)

// CatalogHandler serves categories, tools, reviews and likes.
type CatalogHandler struct {
	CatalogService *service.CatalogService
}

func noContent(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleListCategories handles GET /categories
//
//	@Summary		List categories
//	@Description	Every category by name, with the number of active tools in each.
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	catalogapi.CategoryList
//	@Router			/categories [get].
func (h *CatalogHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CatalogService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, catalogapi.CategoryList{Data: mapSlice(cats, toCategory)})
}

// HandleCreateCategory handles POST /categories
//
//	@Summary		Create a category
//	@Tags			Categories
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.CategoryRequest	true	"Category"
//	@Success		201		{object}	catalogapi.Category
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		409		{object}	catalogapi.ErrorResponse	"Name taken"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/categories [post].
func (h *CatalogHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.CategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	c, err := h.CatalogService.CreateCategory(r.Context(), principal(r.Context()), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategory(c))
}

// HandleUpdateCategory handles PUT /categories/{id}
//
//	@Summary		Update a category
//	@Tags			Categories
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Category ID"
//	@Param			request	body		catalogapi.CategoryRequest	true	"Category"
//	@Success		200		{object}	catalogapi.Category
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		404		{object}	catalogapi.ErrorResponse	"No such category"
//	@Failure		409		{object}	catalogapi.ErrorResponse	"Name taken"
//	@Router			/categories/{id} [put].
func (h *CatalogHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.CategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.CatalogService.UpdateCategory(r.Context(), principal(r.Context()), id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategory(c))
}

// HandleDeleteCategory handles DELETE /categories/{id}
//
//	@Summary		Delete a category
//	@Tags			Categories
//	@Security		SessionCookie
//	@Param			id	path	string	true	"Category ID"
//	@Success		204
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		404	{object}	catalogapi.ErrorResponse	"No such category"
//	@Router			/categories/{id} [delete].
func (h *CatalogHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.CatalogService.DeleteCategory(r.Context(), principal(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	noContent(w)
}

// HandleListTools handles GET /tools
//
//	@Summary		List tools
//	@Description	Only active tools are listed unless the caller is an approved owner, who may filter by any status.
//	@Tags			Tools
//	@Produce		json
//	@Param			category_id	query		string	false	"Category ID"
//	@Param			status		query		string	false	"pending_review, active or inactive (owners only)"
//	@Param			search		query		string	false	"Matches name or description"
//	@Param			featured	query		bool	false	"Featured only"
//	@Param			sort		query		string	false	"newest, popular, rating or views"
//	@Param			page		query		int		false	"Page, from 1"
//	@Param			per_page	query		int		false	"Page size, at most 100"
//	@Success		200			{object}	catalogapi.ToolPage
//	@Failure		422			{object}	catalogapi.ErrorResponse	"Bad filter"
//	@Router			/tools [get].
func (h *CatalogHandler) HandleListTools(w http.ResponseWriter, r *http.Request) {
	featured, err := queryBool(r, "featured")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	page, err := h.CatalogService.ListTools(r.Context(), principal(r.Context()), service.ToolQuery{
		CategoryID: q.Get("category_id"),
		Status:     domain.ToolStatus(q.Get("status")),
		Search:     q.Get("search"),
		Featured:   featured,
		Sort:       domain.ToolSort(q.Get("sort")),
		Page:       queryPage(r),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.ToolPage{
		Data: mapSlice(page.Items, toTool),
		Meta: pageMeta(page),
	})
}

// HandleGetTool handles GET /tools/{id}
//
//	@Summary		Get a tool
//	@Description	Counts a view. Tools that are not active look missing to everyone but approved owners.
//	@Tags			Tools
//	@Produce		json
//	@Param			id	path		string	true	"Tool ID"
//	@Success		200	{object}	catalogapi.Tool
//	@Failure		404	{object}	catalogapi.ErrorResponse	"No such tool"
//	@Router			/tools/{id} [get].
func (h *CatalogHandler) HandleGetTool(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.CatalogService.GetTool(r.Context(), principal(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTool(t))
}

func toolInput(req catalogapi.ToolRequest) service.ToolInput {
	return service.ToolInput{
		Name:             req.Name,
		Description:      req.Description,
		URL:              req.URL,
		DocumentationURL: req.DocumentationURL,
		CategoryIDs:      req.CategoryIDs,
	}
}

// HandleCreateTool handles POST /tools
//
//	@Summary		Submit a tool
//	@Description	Approved users submit tools for review. Tools from approved owners are active straight away.
//	@Tags			Tools
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.ToolRequest	true	"Tool"
//	@Success		201		{object}	catalogapi.Tool
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Account not approved"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/tools [post].
func (h *CatalogHandler) HandleCreateTool(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.ToolRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	t, err := h.CatalogService.CreateTool(r.Context(), principal(r.Context()), toolInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTool(t))
}

// HandleUpdateTool handles PUT /tools/{id}
//
//	@Summary		Edit a tool
//	@Description	Allowed for approved owners and for the approved user who submitted it.
//	@Tags			Tools
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Tool ID"
//	@Param			request	body		catalogapi.ToolRequest	true	"Tool"
//	@Success		200		{object}	catalogapi.Tool
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not allowed to edit"
//	@Failure		404		{object}	catalogapi.ErrorResponse	"No such tool"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/tools/{id} [put].
func (h *CatalogHandler) HandleUpdateTool(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.ToolRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.CatalogService.UpdateTool(r.Context(), principal(r.Context()), id, toolInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTool(t))
}

// HandleDeleteTool handles DELETE /tools/{id}
//
//	@Summary		Delete a tool
//	@Tags			Tools
//	@Security		SessionCookie
//	@Param			id	path	string	true	"Tool ID"
//	@Success		204
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Not allowed to delete"
//	@Failure		404	{object}	catalogapi.ErrorResponse	"No such tool"
//	@Router			/tools/{id} [delete].
func (h *CatalogHandler) HandleDeleteTool(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.CatalogService.DeleteTool(r.Context(), principal(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	noContent(w)
}

// HandleListReviews handles GET /tools/{id}/reviews
//
//	@Summary		List reviews of a tool
//	@Tags			Reviews
//	@Produce		json
//	@Param			id			path		string	true	"Tool ID"
//	@Param			page		query		int		false	"Page, from 1"
//	@Param			per_page	query		int		false	"Page size, at most 100"
//	@Success		200			{object}	catalogapi.ReviewPage
//	@Failure		404			{object}	catalogapi.ErrorResponse	"No such tool"
//	@Router			/tools/{id}/reviews [get].
func (h *CatalogHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	page, err := h.CatalogService.ListReviews(r.Context(), principal(r.Context()), id, queryPage(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, catalogapi.ReviewPage{
		Data: mapSlice(page.Items, toReview),
		Meta: pageMeta(page),
	})
}

// HandleCreateReview handles POST /tools/{id}/reviews
//
//	@Summary		Review a tool
//	@Description	One review per user and tool; update the existing one instead of posting again.
//	@Tags			Reviews
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Tool ID"
//	@Param			request	body		catalogapi.ReviewRequest	true	"Rating 1 to 5 and comment"
//	@Success		201		{object}	catalogapi.Review
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Account not approved"
//	@Failure		409		{object}	catalogapi.ErrorResponse	"Already reviewed"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/tools/{id}/reviews [post].
func (h *CatalogHandler) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.ReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rev, err := h.CatalogService.CreateReview(r.Context(), principal(r.Context()), id, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toReview(rev))
}

// HandleUpdateReview handles PUT /reviews/{id}
//
//	@Summary		Edit a review
//	@Tags			Reviews
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Review ID"
//	@Param			request	body		catalogapi.ReviewRequest	true	"Rating 1 to 5 and comment"
//	@Success		200		{object}	catalogapi.Review
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not the author"
//	@Failure		404		{object}	catalogapi.ErrorResponse	"No such review"
//	@Router			/reviews/{id} [put].
func (h *CatalogHandler) HandleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.ReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rev, err := h.CatalogService.UpdateReview(r.Context(), principal(r.Context()), id, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toReview(rev))
}

// HandleDeleteReview handles DELETE /reviews/{id}
//
//	@Summary		Delete a review
//	@Description	The author, or an approved owner.
//	@Tags			Reviews
//	@Security		SessionCookie
//	@Param			id	path	string	true	"Review ID"
//	@Success		204
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Not allowed"
//	@Failure		404	{object}	catalogapi.ErrorResponse	"No such review"
//	@Router			/reviews/{id} [delete].
func (h *CatalogHandler) HandleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.CatalogService.DeleteReview(r.Context(), principal(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	noContent(w)
}

// HandleLike handles POST /tools/{id}/like
//
//	@Summary		Like a tool
//	@Description	Idempotent.
//	@Tags			Likes
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string	true	"Tool ID"
//	@Success		200	{object}	catalogapi.LikeResponse
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Account not approved"
//	@Failure		404	{object}	catalogapi.ErrorResponse	"No such tool"
//	@Router			/tools/{id}/like [post].
func (h *CatalogHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	st, err := h.CatalogService.Like(r.Context(), principal(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, catalogapi.LikeResponse{Liked: st.Liked, LikesCount: st.LikesCount})
}

// HandleUnlike handles DELETE /tools/{id}/like
//
//	@Summary		Remove a like
//	@Description	Idempotent.
//	@Tags			Likes
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string	true	"Tool ID"
//	@Success		200	{object}	catalogapi.LikeResponse
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Account not approved"
//	@Failure		404	{object}	catalogapi.ErrorResponse	"No such tool"
//	@Router			/tools/{id}/like [delete].
func (h *CatalogHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	st, err := h.CatalogService.Unlike(r.Context(), principal(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, catalogapi.LikeResponse{Liked: st.Liked, LikesCount: st.LikesCount})
}
