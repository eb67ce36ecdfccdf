// ABOUTME: Provider-neutral embedding and generation capabilities
// ABOUTME: Factories pick the OpenAI-compatible or Ollama implementation from config
package llm

import (
	"context"
	"fmt"

	"github.com/harper/tubewise/internal/config"
)

// Embedder maps text to a fixed-dimension vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion for a system instruction and a user prompt
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewGenerator builds the configured generation client
func NewGenerator(cfg *config.Config) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderOllama:
		client, err := NewOllamaClient(&OllamaConfig{
			ServerURL:   cfg.OllamaURL,
			Model:       cfg.OllamaModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Retry:       cfg.RetryPolicy(),
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		client, err := NewOpenAIClientWithConfig(&ClientConfig{
			APIKey:      cfg.LLMAPIKey,
			BaseURL:     cfg.LLMBaseURL,
			ChatModel:   cfg.LLMModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Retry:       cfg.RetryPolicy(),
		})
		if err != nil {
			return nil, fmt.Errorf("llm client: %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
}

// NewEmbedder builds the configured embedding client
func NewEmbedder(cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOllama:
		client, err := NewOllamaClient(&OllamaConfig{
			ServerURL:      cfg.OllamaURL,
			EmbeddingModel: cfg.OllamaEmbeddingModel,
			Retry:          cfg.RetryPolicy(),
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		client, err := NewOpenAIClientWithConfig(&ClientConfig{
			APIKey:         cfg.EmbeddingAPIKey,
			BaseURL:        cfg.EmbeddingBaseURL,
			EmbeddingModel: cfg.EmbeddingModel,
			Retry:          cfg.RetryPolicy(),
		})
		if err != nil {
			return nil, fmt.Errorf("embedding client: %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
}
