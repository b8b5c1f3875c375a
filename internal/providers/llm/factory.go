package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/journal/internal/config"
	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/pkg/log"
)

// NewChatProvider creates the language model client selected by configuration.
func NewChatProvider(ctx context.Context, cfg *config.AppConfig) (core.ChatProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.LLMModel).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.LLMModel, cfg.RequestTimeout), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel, cfg.RequestTimeout), nil
	case "anthropic":
		return NewAnthropic(cfg.AnthropicAPIKey, "", cfg.LLMModel, cfg.RequestTimeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}

// NewEmbedder creates the embedding model client selected by configuration.
func NewEmbedder(ctx context.Context, cfg *config.AppConfig) (core.Embedder, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.EmbeddingProvider).
		Str("model", cfg.EmbeddingModel).
		Msg("starting embedding provider")

	switch cfg.EmbeddingProvider {
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.EmbeddingModel, cfg.RequestTimeout), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.RequestTimeout), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbeddingProvider)
	}
}
