// ABOUTME: Ollama client for local embeddings and generation via langchaingo
// ABOUTME: Mirrors OpenAIClient so either backend satisfies Embedder and Generator
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/tubewise/internal/models"
	"github.com/harper/tubewise/internal/util"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaConfig holds configuration for the Ollama client.
// Model and EmbeddingModel may be set independently; an empty one disables that capability.
type OllamaConfig struct {
	ServerURL      string
	Model          string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
	Retry          util.RetryPolicy
}

// OllamaClient talks to an Ollama server
type OllamaClient struct {
	chat        *ollama.LLM
	embedder    *embeddings.EmbedderImpl
	temperature float64
	maxTokens   int
	retry       util.RetryPolicy
}

// NewOllamaClient creates the chat and embedding backends named in cfg
func NewOllamaClient(cfg *OllamaConfig) (*OllamaClient, error) {
	if cfg.Model == "" && cfg.EmbeddingModel == "" {
		return nil, fmt.Errorf("ollama client needs a chat or embedding model")
	}

	c := &OllamaClient{
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		retry:       cfg.Retry,
	}

	if cfg.Model != "" {
		chat, err := ollama.New(ollama.WithServerURL(cfg.ServerURL), ollama.WithModel(cfg.Model))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ollama chat model: %w", err)
		}
		c.chat = chat
	}

	if cfg.EmbeddingModel != "" {
		embedLLM, err := ollama.New(ollama.WithServerURL(cfg.ServerURL), ollama.WithModel(cfg.EmbeddingModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ollama embedding model: %w", err)
		}
		embedder, err := embeddings.NewEmbedder(embedLLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama embedder: %w", err)
		}
		c.embedder = embedder
	}

	return c, nil
}

// Embed generates an embedding vector for text
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.embedder == nil {
		return nil, models.NewError(models.KindEmbedding, "embed", errors.New("no ollama embedding model configured"))
	}

	vec, err := util.Retry(ctx, c.retry, "embed", func(ctx context.Context) ([]float32, error) {
		v, err := c.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		if len(v) == 0 {
			return nil, errors.New("no embeddings returned")
		}
		return v, nil
	})
	if err != nil {
		return nil, models.NewError(models.KindEmbedding, "embed", err)
	}
	return vec, nil
}

// Complete sends a system instruction and user prompt and returns the first choice
func (c *OllamaClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.chat == nil {
		return "", models.NewError(models.KindGeneration, "complete", errors.New("no ollama chat model configured"))
	}

	messages := make([]llms.MessageContent, 0, 2)
	if system != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, user))

	opts := []llms.CallOption{llms.WithTemperature(c.temperature)}
	if c.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.maxTokens))
	}

	content, err := util.Retry(ctx, c.retry, "complete", func(ctx context.Context) (string, error) {
		resp, err := c.chat.GenerateContent(ctx, messages, opts...)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("no completion choices returned")
		}
		return resp.Choices[0].Content, nil
	})
	if err != nil {
		return "", models.NewError(models.KindGeneration, "complete", err)
	}
	return content, nil
}
