package sessionx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/aicatalog/pkg/sessionx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("k", 32))

func newSigner(t *testing.T, now time.Time) *sessionx.HS256 {
	t.Helper()
	s, err := sessionx.NewHS256(testSecret, "catalog-test")
	require.NoError(t, err)
	s.Now = func() time.Time { return now }
	return s
}

func TestSignAndVerify(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newSigner(t, now)

	token, err := s.Sign(sessionx.NewClaims("user-1", "sess-1", s.Issuer(), time.Hour, now))
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "sess-1", claims.SID)
}

func TestVerifyRejectsExpiredAtBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newSigner(t, now)

	token, err := s.Sign(sessionx.NewClaims("user-1", "sess-1", s.Issuer(), time.Hour, now))
	require.NoError(t, err)

	s.Now = func() time.Time { return now.Add(time.Hour - time.Second) }
	_, err = s.Verify(token)
	require.NoError(t, err)

	s.Now = func() time.Time { return now.Add(time.Hour) }
	_, err = s.Verify(token)
	require.ErrorIs(t, err, sessionx.ErrExpired)
}

func TestVerifyRejectsTampering(t *testing.T) {
	now := time.Now()
	s := newSigner(t, now)

	t.Run("other secret", func(t *testing.T) {
		other, err := sessionx.NewHS256([]byte(strings.Repeat("z", 32)), "catalog-test")
		require.NoError(t, err)
		token, err := other.Sign(sessionx.NewClaims("u", "s", "catalog-test", time.Hour, now))
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, sessionx.ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		token, err := s.Sign(sessionx.NewClaims("u", "s", "someone-else", time.Hour, now))
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, sessionx.ErrIssuer)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := sessionx.NewClaims("u", "s", "catalog-test", time.Hour, now)
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, sessionx.ErrInvalidToken)
	})

	t.Run("missing sid", func(t *testing.T) {
		token, err := s.Sign(sessionx.NewClaims("u", "", "catalog-test", time.Hour, now))
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, sessionx.ErrMissingClaims)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not.a.jwt")
		require.ErrorIs(t, err, sessionx.ErrInvalidToken)

		_, err = s.Verify("")
		require.ErrorIs(t, err, sessionx.ErrInvalidToken)
	})
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	_, err := sessionx.NewHS256([]byte("short"), "x")
	require.ErrorIs(t, err, sessionx.ErrWeakSecret)
}
