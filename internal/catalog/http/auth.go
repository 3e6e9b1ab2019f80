package http

import (
	"net/http"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

// AuthHandler handles registration, login and the session itself.
type AuthHandler struct {
	AuthService  *service.AuthService
	CookieSecure bool
}

// HandleRegister handles POST /register
//
//	@Summary		Register an account
//	@Description	Creates a pending account. The user can log in straight away but acts as an employee until an owner approves them.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.RegisterRequest	true	"Account details"
//	@Success		201		{object}	catalogapi.UserResponse		"Pending account"
//	@Failure		400		{object}	catalogapi.ErrorResponse	"Malformed JSON"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Failure		429		{object}	catalogapi.ErrorResponse	"Rate limited"
//	@Router			/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 domain.Role(req.Role),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, catalogapi.UserResponse{
		Success: true,
		Message: "Registration successful. Your account is awaiting approval.",
		User:    toUser(u),
	})
}

// HandleLogin handles POST /login
//
//	@Summary		Log in
//	@Description	Checks credentials and, when two-factor authentication is enabled, the code.
//	@Description	Without a code the response has requires_2fa set, a code is sent on email and telegram, and no session is created.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.LoginRequest		true	"Credentials"
//	@Success		200		{object}	catalogapi.LoginResponse	"Logged in, or second factor required"
//	@Failure		401		{object}	catalogapi.LoginResponse	"Bad credentials, or bad code with requires_2fa set"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Failure		429		{object}	catalogapi.ErrorResponse	"Rate limited"
//	@Router			/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req catalogapi.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.AuthService.Login(ctx, service.LoginInput{
		Email:         req.Email,
		Password:      req.Password,
		TwoFactorCode: req.TwoFactorCode,
	}, service.ClientInfo{
		UserAgent: r.UserAgent(),
		IP:        httpx.IPKeyExtractor(r),
	})
	if err != nil {
		writeLoginError(w, r, res, err)
		return
	}

	if res.RequiresTwoFactor {
		httpx.WriteJSON(w, http.StatusOK, catalogapi.LoginResponse{
			Success:           false,
			Message:           "Two-factor authentication code required.",
			RequiresTwoFactor: true,
			TwoFactorType:     string(res.TwoFactorType),
		})
		return
	}

	slogx.FromContext(ctx).Info("user logged in", "user_id", res.User.ID)

	setSessionCookie(w, res.Token, res.Session.ExpiresAt, h.CookieSecure)
	user := toUser(res.User)
	httpx.WriteJSON(w, http.StatusOK, catalogapi.LoginResponse{
		Success: true,
		Message: "Login successful.",
		User:    &user,
	})
}

// HandleLogout handles POST /logout
//
//	@Summary		Log out
//	@Description	Ends the current session and clears the cookie. Succeeds without a session too.
//	@Tags			Auth
//	@Success		204
//	@Router			/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if sess, ok := currentSession(ctx); ok {
		if err := h.AuthService.Logout(ctx, principal(ctx), sess.ID); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	clearSessionCookie(w, h.CookieSecure)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /me
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	catalogapi.User
//	@Failure		401	{object}	catalogapi.ErrorResponse	"No session"
//	@Router			/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, toUser(principal(r.Context())))
}
