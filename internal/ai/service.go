package ai

import (
	"context"
	"fmt"

	"cvmatch/internal/config"
	"cvmatch/internal/errors"
	"cvmatch/internal/observability"
)

// Service bundles the AI capabilities behind a single construction point
type Service struct {
	Provider Provider
	logger   *errors.Logger
}

// NewService creates a new AI service instance from the resolved operation
// configurations. om may be nil; AI operations then run untracked.
func NewService(cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager) (*Service, error) {
	tagCfg := cfg.GetTagConfig()
	embedCfg := cfg.GetEmbedConfig()

	logger.Debug("Initializing AI service",
		"provider", tagCfg.Provider,
		"tag_model", tagCfg.Model,
		"embed_model", embedCfg.Model,
		"tag_max_input_tokens", tagCfg.MaxInputTokens,
		"embed_batch_size", embedCfg.BatchSize)

	var provider Provider
	var err error

	switch tagCfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(&tagCfg, &embedCfg, logger, om)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", tagCfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		logger:   logger,
	}, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// GetCircuitBreakerStats returns the per-operation circuit breaker state
func (s *Service) GetCircuitBreakerStats() map[string]any {
	return s.Provider.GetCircuitBreakerStats()
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}
