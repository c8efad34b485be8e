package bootstrap

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/promptforge/promptforge-backend/config"
	"github.com/promptforge/promptforge-backend/internal/llm"
)

// BuildGateway returns the AI gateway, or nil when the credentials are
// missing. The app still serves project listing without it.
func BuildGateway(cfg config.AIConfig) (*llm.Gateway, error) {
	gw, err := llm.NewGateway(cfg)
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Warn().Err(err).Msg("chat functionality will not be available")
			return nil, nil
		}
		return nil, err
	}

	if cfg.IsPlaceholderKey() {
		log.Warn().Str("provider", gw.ProviderName()).Msg("using placeholder API key; chat functionality will not work")
	} else {
		log.Info().Str("provider", gw.ProviderName()).Msg("AI provider configured")
	}
	return gw, nil
}
