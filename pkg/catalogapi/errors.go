package catalogapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is returned by the client for any unexpected status code.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]string

	// RequiresTwoFactor is set on a login rejected for a bad second-factor
	// code, as opposed to a bad password.
	RequiresTwoFactor bool
	TwoFactorType     string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.FieldErrors) == 0 {
		return fmt.Sprintf("catalogapi: %d %s", e.StatusCode, msg)
	}

	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("catalogapi: %d %s (%s)", e.StatusCode, msg, strings.Join(fields, ", "))
}

// StatusCode extracts the HTTP status from an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthenticated(err error) bool { return StatusCode(err) == http.StatusUnauthorized }

func IsForbidden(err error) bool { return StatusCode(err) == http.StatusForbidden }

func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

func IsConflict(err error) bool { return StatusCode(err) == http.StatusConflict }

func IsValidation(err error) bool { return StatusCode(err) == http.StatusUnprocessableEntity }

// IsTwoFactorRejected reports a login that passed the password check but
// failed on the second-factor code.
func IsTwoFactorRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized && apiErr.RequiresTwoFactor
}

// parseErrorResponse builds an *APIError from an error body. Bodies that are
// not the standard envelope keep only the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env ErrorResponse
	if err := json.Unmarshal(body, &env); err == nil {
		apiErr.Message = env.Message
		apiErr.FieldErrors = env.FieldErrors
		apiErr.RequiresTwoFactor = env.RequiresTwoFactor
		apiErr.TwoFactorType = env.TwoFactorType
	}
	return apiErr
}
