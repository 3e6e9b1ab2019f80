package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/aicatalog/pkg/cryptox"
	"github.com/aussiebroadwan/aicatalog/pkg/sessionx"
)

// InitSessionKeys builds the cookie signer.
//
// With no CATALOG_SESSION_SECRET a random secret is generated on startup and
// held only in memory, so every session ends when the service restarts.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*sessionx.HS256, error) {
	secret := cfg.SessionSecret
	if secret == "" {
		generated, err := cryptox.GenerateToken(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = generated
		logger.Warn("CATALOG_SESSION_SECRET not set, using an ephemeral secret; sessions will not survive restarts")
	}

	tokens, err := sessionx.NewHS256([]byte(secret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	return tokens, nil
}
