package catalog_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLogin checks the strict per-IP profile on /login (5 per
// minute).
func TestRateLimitLogin(t *testing.T) {
	svc := setupCatalogWithDefaultRateLimits(t)
	client := svc.client()

	var lastErr error
	for i := range 6 {
		_, err := client.Login(t.Context(), catalogapi.LoginRequest{Email: "nobody@example.com", Password: "wrong-password"})
		if i < 5 {
			require.True(t, catalogapi.IsUnauthenticated(err), "request %d should fail on credentials, got %v", i+1, err)
		} else {
			lastErr = err
		}
	}

	require.Equal(t, http.StatusTooManyRequests, catalogapi.StatusCode(lastErr))
}
