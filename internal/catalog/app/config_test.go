package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
	"github.com/aussiebroadwan/aicatalog/pkg/sessionx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key the tests touch so the host environment does
// not leak in. Viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		ConfigFileEnv, "PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT",
		"CATALOG_ISSUER", "CATALOG_SESSION_SECRET", "CATALOG_SESSION_TTL",
		"CATALOG_CODE_STORE", "CATALOG_REDIS_ADDR", "CATALOG_EMAIL_PROVIDER",
		"CATALOG_RESEND_API_KEY", "CATALOG_EMAIL_FROM", "CATALOG_COOKIE_SECURE",
		"CATALOG_BOOTSTRAP_OWNER_EMAIL", "RATELIMIT_STRICT_REQUESTS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, "catalog.db", cfg.DatabaseFile)
	require.Equal(t, "AI Catalog", cfg.Issuer)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, "memory", cfg.CodeStore)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, "log", cfg.EmailProvider)
	require.Equal(t, 64, cfg.NotifyQueueSize)
	require.Equal(t, 256, cfg.ViewQueueSize)
	require.Equal(t, "Owner", cfg.BootstrapOwner.Name)
	require.Equal(t, httpx.StrictLimit, cfg.RateLimits.Strict)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CATALOG_CODE_STORE", "Redis")
	t.Setenv("CATALOG_SESSION_TTL", "2h")
	t.Setenv("CATALOG_COOKIE_SECURE", "true")
	t.Setenv("CATALOG_BOOTSTRAP_OWNER_EMAIL", "boss@example.com")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "9")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "redis", cfg.CodeStore)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, "boss@example.com", cfg.BootstrapOwner.Email)
	require.Equal(t, 9, cfg.RateLimits.Strict.RequestsPerWindow)
	require.Equal(t, httpx.StrictLimit.Window, cfg.RateLimits.Strict.Window)
}

func TestLoadConfigFileUnderEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"port: 7000",
		"catalog_issuer: Tool Shed",
		"catalog_session_ttl: 90m",
	}, "\n")), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("PORT", "7001")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 7001, cfg.Port, "environment wins over the file")
	require.Equal(t, "Tool Shed", cfg.Issuer)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown code store", map[string]string{"CATALOG_CODE_STORE": "etcd"}},
		{"resend without key", map[string]string{"CATALOG_EMAIL_PROVIDER": "resend"}},
		{"unknown email provider", map[string]string{"CATALOG_EMAIL_PROVIDER": "smtp"}},
		{"short session secret", map[string]string{"CATALOG_SESSION_SECRET": "too-short"}},
		{"missing config file", map[string]string{ConfigFileEnv: "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestInitSessionKeys(t *testing.T) {
	now := time.Now()

	t.Run("generated secret", func(t *testing.T) {
		tokens, err := InitSessionKeys(Config{Issuer: "AI Catalog"}, slogx.Discard())
		require.NoError(t, err)

		tok, err := tokens.Sign(sessionx.NewClaims("u1", "s1", "AI Catalog", time.Hour, now))
		require.NoError(t, err)
		claims, err := tokens.Verify(tok)
		require.NoError(t, err)
		require.Equal(t, "s1", claims.SID)
	})

	t.Run("configured secret is stable", func(t *testing.T) {
		cfg := Config{Issuer: "AI Catalog", SessionSecret: strings.Repeat("s", 32)}
		a, err := InitSessionKeys(cfg, slogx.Discard())
		require.NoError(t, err)
		b, err := InitSessionKeys(cfg, slogx.Discard())
		require.NoError(t, err)

		tok, err := a.Sign(sessionx.NewClaims("u1", "s1", "AI Catalog", time.Hour, now))
		require.NoError(t, err)
		_, err = b.Verify(tok)
		require.NoError(t, err)
	})
}
