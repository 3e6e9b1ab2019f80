package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/notify"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// serviceErrors is checked in order with errors.Is.
var serviceErrors = []errorMapping{
	{service.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated."},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "These credentials do not match our records."},
	{service.ErrUnauthorized, http.StatusForbidden, "This action is unauthorized."},
	{service.ErrNotFound, http.StatusNotFound, "Not found."},
	{service.ErrLastOwner, http.StatusConflict, "The last approved owner cannot give up ownership."},
	{service.ErrConflict, http.StatusConflict, "The resource already exists."},
	{service.ErrInvalidCode, http.StatusBadRequest, "The verification code is invalid or has expired."},
	{service.ErrNotEnabled, http.StatusBadRequest, "Two-factor authentication is not enabled."},
	{service.ErrUnsupportedForChannel, http.StatusBadRequest, "Codes cannot be resent for this two-factor type."},
	{service.ErrNotConfigured, http.StatusBadRequest, "Two-factor authentication is not configured."},
}

// writeServiceError is the one place service errors become HTTP responses.
// Anything unrecognised is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "The given data was invalid.", verr.Fields)
		return
	}
	if errors.Is(err, httpx.ErrBadJSON) {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body.", nil)
		return
	}
	var derr *notify.DeliveryError
	if errors.As(err, &derr) {
		log.Warn("message delivery failed", "channel", derr.Channel, "err", derr.Err)
		httpx.WriteError(w, http.StatusBadGateway, "The verification code could not be delivered. Please try again.", nil)
		return
	}

	for _, m := range serviceErrors {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := m.message
		var perr *service.PublicError
		if errors.As(err, &perr) && perr.Message != "" {
			msg = perr.Message
		}
		httpx.WriteError(w, m.status, msg, nil)
		return
	}

	log.Error("unhandled service error", "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, "Server error.", nil)
}

// writeLoginError answers a failed second factor with 401 rather than 400.
// The body keeps the second-factor flag so a bad code reads differently from
// a bad password.
func writeLoginError(w http.ResponseWriter, r *http.Request, res service.LoginResult, err error) {
	if errors.Is(err, service.ErrInvalidCode) {
		httpx.WriteJSON(w, http.StatusUnauthorized, catalogapi.LoginResponse{
			Success:           false,
			Message:           "The verification code is invalid or has expired.",
			RequiresTwoFactor: res.RequiresTwoFactor,
			TwoFactorType:     string(res.TwoFactorType),
		})
		return
	}
	writeServiceError(w, r, err)
}
