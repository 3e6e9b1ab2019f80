package sessionx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs session claims.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier parses a cookie value back into validated claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// HS256 implements both Signer and Verifier with a shared secret. The service
// is the only party that ever reads the cookie, so a symmetric key is enough.
type HS256 struct {
	secret []byte
	issuer string

	// Now is overridable for tests.
	Now func() time.Time
}

// NewHS256 creates a signer/verifier pair. The secret must carry at least
// 256 bits.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) < 32 {
		return nil, ErrWeakSecret
	}
	return &HS256{secret: secret, issuer: issuer, Now: time.Now}, nil
}

// Issuer returns the issuer stamped into every token.
func (h *HS256) Issuer() string { return h.issuer }

// Sign turns claims into a compact JWT.
func (h *HS256) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.secret)
}

// Verify checks the signature first, then our own claim rules.
func (h *HS256) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	// Time based claims are validated below with the injectable clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.Join(ErrInvalidToken, errors.New("sessionx: unexpected claims type"))
	}

	if err := claims.ValidateAt(h.Now(), h.issuer); err != nil {
		return nil, err
	}
	return claims, nil
}
