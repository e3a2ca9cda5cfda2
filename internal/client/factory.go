package client

import (
	"context"

	"nlsql-service/internal/config"
	"nlsql-service/internal/llm"
	"nlsql-service/internal/types"
)

// Select picks exactly one provider for a request.
// Precedence, first match wins:
//  1. OpenAI credential present -> openai, regardless of preference.
//  2. Bedrock credential pair present -> anthropic, regardless of preference.
//  3. Whatever the caller's preference names; anything other than "openai"
//     means anthropic.
//
// The decision is made once per request and is never revisited on failure.
func Select(cfg *config.Config, preference string) string {
	if cfg.HasOpenAI() {
		return types.ProviderOpenAI
	}
	if cfg.HasBedrock() {
		return types.ProviderAnthropic
	}
	if preference == types.ProviderOpenAI {
		return types.ProviderOpenAI
	}
	return types.ProviderAnthropic
}

// NewProvider constructs the provider chosen by Select. Construction failures
// (including missing credentials on the preference path) come back wrapped
// with the provider's name.
func NewProvider(ctx context.Context, cfg *config.Config, preference string) (llm.Provider, error) {
	switch Select(cfg, preference) {
	case types.ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, types.NewProviderError(types.ProviderOpenAI, err)
		}
		return p, nil
	default:
		p, err := NewBedrockProvider(ctx, cfg)
		if err != nil {
			return nil, types.NewProviderError(types.ProviderAnthropic, err)
		}
		return p, nil
	}
}
