// Package sessionx signs and verifies the session cookie. The cookie is a
// compact HS256 JWT that names the user (sub) and the server-side session row
// (sid); revocation happens by deleting the row, so the token itself stays
// small and carries no authorisation data.
package sessionx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a session cookie and its row live.
const DefaultSessionTTL = 24 * time.Hour

var (
	ErrExpired       = errors.New("sessionx: token expired")
	ErrNotYetValid   = errors.New("sessionx: token not yet valid")
	ErrIssuer        = errors.New("sessionx: issuer mismatch")
	ErrMissingClaims = errors.New("sessionx: missing sub or sid")
	ErrInvalidToken  = errors.New("sessionx: invalid token")
	ErrWeakSecret    = errors.New("sessionx: secret must be at least 32 bytes")
)

// Claims are the session cookie claims.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the id of the persisted session row.
	SID string `json:"sid"`
}

// NewClaims builds the claims for a freshly established session.
func NewClaims(userID, sessionID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SID: sessionID,
	}
}

// ValidateAt checks expiry, not-before, issuer and required fields against now.
func (c *Claims) ValidateAt(now time.Time, issuer string) error {
	if c.Subject == "" || c.SID == "" {
		return ErrMissingClaims
	}
	if issuer != "" && c.Issuer != issuer {
		return ErrIssuer
	}
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
