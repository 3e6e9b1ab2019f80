package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

var (
	ErrValidation            = errors.New("the given data was invalid")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrUnauthorized          = errors.New("this action is unauthorized")
	ErrInvalidCode           = errors.New("invalid or expired verification code")
	ErrConflict              = errors.New("resource already exists")
	ErrNotFound              = errors.New("resource not found")
	ErrNotEnabled            = errors.New("two-factor authentication is not enabled")
	ErrUnsupportedForChannel = errors.New("operation not supported for this two-factor channel")
	ErrNotConfigured         = errors.New("two-factor authentication is not configured")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrLastOwner             = errors.New("cannot remove the last approved owner")
)

// ValidationError carries one message per offending input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (%s)", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func fieldError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// PublicError pairs a sentinel with a message that is safe to show callers.
type PublicError struct {
	Kind    error
	Message string
}

func (e *PublicError) Error() string { return e.Message }

func (e *PublicError) Unwrap() error { return e.Kind }

func conflict(msg string) error { return &PublicError{Kind: ErrConflict, Message: msg} }

// mapStoreErr translates repository sentinels into the service taxonomy.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrConflict
	}
	return err
}
