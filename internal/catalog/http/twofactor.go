package http

import (
	"net/http"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
)

// TwoFactorHandler handles all 2FA endpoints for the logged-in user.
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
}

// HandleStatus handles GET /2fa/status
//
//	@Summary		Two-factor status
//	@Tags			Two-factor
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	catalogapi.TwoFactorStatusResponse
//	@Failure		401	{object}	catalogapi.ErrorResponse	"No session"
//	@Router			/2fa/status [get].
func (h *TwoFactorHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st := h.TwoFactorService.Status(principal(r.Context()))
	httpx.WriteJSON(w, http.StatusOK, catalogapi.TwoFactorStatusResponse{
		TwoFactorEnabled:  st.Enabled,
		TwoFactorType:     string(st.Type),
		HasTelegramChatID: st.HasTelegramChatID,
	})
}

// HandleSetup handles POST /2fa/setup
//
//	@Summary		Choose a two-factor channel
//	@Description	Switches the user to email, telegram or google_authenticator. 2FA stays disabled until a code is verified.
//	@Description	email and telegram receive a code immediately; google_authenticator returns the secret and otpauth URI.
//	@Tags			Two-factor
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.TwoFactorSetupRequest	true	"Channel"
//	@Success		200		{object}	catalogapi.TwoFactorSetupResponse
//	@Failure		401		{object}	catalogapi.ErrorResponse	"No session"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Validation failed"
//	@Failure		502		{object}	catalogapi.ErrorResponse	"Code could not be delivered"
//	@Router			/2fa/setup [post].
func (h *TwoFactorHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.TwoFactorSetupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.TwoFactorService.Setup(r.Context(), principal(r.Context()), service.SetupInput{
		Type:           req.Type,
		TelegramChatID: req.TelegramChatID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "A verification code has been sent. Enter it to enable two-factor authentication."
	if res.Type == domain.TwoFactorTOTP {
		msg = "Scan the QR code with your authenticator app, then enter a code to enable two-factor authentication."
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.TwoFactorSetupResponse{
		Success:    true,
		Message:    msg,
		Type:       string(res.Type),
		Secret:     res.Secret,
		OTPAuthURI: res.OTPAuthURI,
		CodeSent:   res.CodeSent,
	})
}

// HandleVerify handles POST /2fa/verify
//
//	@Summary		Verify a code and enable 2FA
//	@Tags			Two-factor
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.TwoFactorCodeRequest	true	"6 digit code"
//	@Success		200		{object}	catalogapi.UserResponse
//	@Failure		400		{object}	catalogapi.ErrorResponse	"Invalid code or no channel configured"
//	@Failure		401		{object}	catalogapi.ErrorResponse	"No session"
//	@Failure		422		{object}	catalogapi.ErrorResponse	"Malformed code"
//	@Router			/2fa/verify [post].
func (h *TwoFactorHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.TwoFactorCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.TwoFactorService.Verify(r.Context(), principal(r.Context()), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.UserResponse{
		Success: true,
		Message: "Two-factor authentication enabled.",
		User:    toUser(u),
	})
}

// HandleDisable handles POST /2fa/disable
//
//	@Summary		Disable 2FA
//	@Description	Needs a valid code for the active channel.
//	@Tags			Two-factor
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapi.TwoFactorCodeRequest	true	"6 digit code"
//	@Success		200		{object}	catalogapi.UserResponse
//	@Failure		400		{object}	catalogapi.ErrorResponse	"Invalid code or 2FA not enabled"
//	@Failure		401		{object}	catalogapi.ErrorResponse	"No session"
//	@Router			/2fa/disable [post].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	var req catalogapi.TwoFactorCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.TwoFactorService.Disable(r.Context(), principal(r.Context()), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.UserResponse{
		Success: true,
		Message: "Two-factor authentication disabled.",
		User:    toUser(u),
	})
}

// HandleResend handles POST /2fa/resend-code
//
//	@Summary		Resend a code
//	@Description	Issues a fresh code for email and telegram. Any earlier code stops working.
//	@Tags			Two-factor
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	catalogapi.MessageResponse
//	@Failure		400	{object}	catalogapi.ErrorResponse	"Not supported for the channel"
//	@Failure		401	{object}	catalogapi.ErrorResponse	"No session"
//	@Failure		502	{object}	catalogapi.ErrorResponse	"Code could not be delivered"
//	@Router			/2fa/resend-code [post].
func (h *TwoFactorHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	if err := h.TwoFactorService.ResendCode(r.Context(), principal(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, catalogapi.MessageResponse{
		Success: true,
		Message: "A new verification code has been sent.",
	})
}
