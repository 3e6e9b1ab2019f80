package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

// AdminUsersHandler is the owner-facing user management surface.
type AdminUsersHandler struct {
	UserAdminService *service.UserAdminService
}

// HandleList handles GET /admin/users
//
//	@Summary		List users
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Param			status		query		string	false	"pending, approved or rejected"
//	@Param			role		query		string	false	"Role filter"
//	@Param			search		query		string	false	"Matches name or email"
//	@Param			page		query		int		false	"Page, from 1"
//	@Param			per_page	query		int		false	"Page size, at most 100"
//	@Success		200			{object}	catalogapi.UserPage
//	@Failure		401			{object}	catalogapi.ErrorResponse	"No session"
//	@Failure		403			{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Router			/admin/users [get].
func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.UserAdminService.List(r.Context(), principal(r.Context()), store.UserFilter{
		Status: domain.UserStatus(q.Get("status")),
		Role:   domain.Role(q.Get("role")),
		Search: q.Get("search"),
		Page:   queryPage(r),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.UserPage{
		Data: mapSlice(page.Items, toUser),
		Meta: pageMeta(page),
	})
}

// HandleGet handles GET /admin/users/{id}
//
//	@Summary		Get a user
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	catalogapi.User
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		404	{object}	catalogapi.ErrorResponse	"No such user"
//	@Router			/admin/users/{id} [get].
func (h *AdminUsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.UserAdminService.Get(r.Context(), principal(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleCreate handles POST /admin/users
//
//	@Summary		Create a user
//	@Description	Creates an account directly, approved unless a status is given. A password is generated and returned once when none is supplied.
//	@Tags			Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.CreateUserRequest	true	"Account"
//	@Success		201		{object}	catalogapi.CreatedUserResponse
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/admin/users [post].
func (h *AdminUsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := h.UserAdminService.Create(r.Context(), principal(r.Context()), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Status:   domain.UserStatus(req.Status),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, catalogapi.CreatedUserResponse{
		Success:           true,
		User:              toUser(created.User),
		GeneratedPassword: created.GeneratedPassword,
	})
}

// HandleSetStatus handles POST /admin/users/{id}/approve
//
//	@Summary		Set approval status
//	@Description	Moves a user to approved, rejected or pending. Approval and rejection notify the user by email.
//	@Tags			Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User ID"
//	@Param			request	body		catalogapi.UserStatusRequest	true	"New status"
//	@Success		200		{object}	catalogapi.UserResponse
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		404		{object}	catalogapi.ErrorResponse	"No such user"
//	@Failure		409		{object}	catalogapi.ErrorResponse	"Would remove the last approved owner"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/admin/users/{id}/approve [post].
func (h *AdminUsersHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.UserStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.UserAdminService.SetStatus(r.Context(), principal(r.Context()), id, domain.UserStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.UserResponse{
		Success: true,
		Message: fmt.Sprintf("User status set to %s.", u.Status),
		User:    toUser(u),
	})
}

// HandleSetRole handles PUT /admin/users/{id}/role
//
//	@Summary		Change role
//	@Tags			Admin
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		catalogapi.UserRoleRequest	true	"New role"
//	@Success		200		{object}	catalogapi.UserResponse
//	@Failure		403		{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Failure		404		{object}	catalogapi.ErrorResponse	"No such user"
//	@Failure		409		{object}	catalogapi.ErrorResponse	"Would remove the last approved owner"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Router			/admin/users/{id}/role [put].
func (h *AdminUsersHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.UserRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.UserAdminService.SetRole(r.Context(), principal(r.Context()), id, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.UserResponse{
		Success: true,
		Message: fmt.Sprintf("User role set to %s.", u.Role),
		User:    toUser(u),
	})
}

// HandleExport handles GET /admin/users/export
//
//	@Summary		Export users as CSV
//	@Description	UTF-8 with BOM. Columns: ID, Name, Email, Role, Status, CreatedAt, UpdatedAt.
//	@Tags			Admin
//	@Security		SessionCookie
//	@Produce		text/csv
//	@Success		200	{string}	string						"CSV file"
//	@Failure		403	{object}	catalogapi.ErrorResponse	"Not an approved owner"
//	@Router			/admin/users/export [get].
func (h *AdminUsersHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out := &exportWriter{
		w:    w,
		name: fmt.Sprintf("users-%s.csv", time.Now().UTC().Format("2006-01-02")),
	}
	err := h.UserAdminService.ExportCSV(ctx, principal(ctx), out)
	switch {
	case err == nil:
	case !out.started:
		writeServiceError(w, r, err)
	default:
		// The status line is gone. Cut the connection so the client sees a
		// truncated transfer rather than a short file.
		slogx.FromContext(ctx).Error("user export failed mid-stream", "err", err)
		panic(http.ErrAbortHandler)
	}
}

// exportWriter sends the CSV headers on the first write, so an export that
// fails before producing output can still answer with a JSON error.
type exportWriter struct {
	w       http.ResponseWriter
	name    string
	started bool
}

func (e *exportWriter) Write(p []byte) (int, error) {
	if !e.started {
		e.started = true
		httpx.NoCache(e.w)
		e.w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		e.w.Header().Set("Content-Disposition", `attachment; filename="`+e.name+`"`)
		e.w.WriteHeader(http.StatusOK)
	}
	return e.w.Write(p)
}
