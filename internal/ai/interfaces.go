package ai

import (
	"context"

	"resumelens/internal/config"
	"resumelens/internal/errors"
)

// Provider is the interface all LLM providers must implement
type Provider interface {
	// Complete sends a prompt to the model and returns the raw text response.
	// The operation name is used for tracing and circuit breaker identification.
	Complete(ctx context.Context, operation, systemPrompt, userPrompt string) (string, *TokenUsage, error)

	// GetModelInfo checks the readiness and availability of the configured model
	GetModelInfo(ctx context.Context) *ModelInfo
}

// NewProvider creates an AI provider based on the configuration
func NewProvider(cfg *config.AIConfig, logger *errors.Logger) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Unsupported AI provider: "+cfg.Provider, nil)
	}
}
