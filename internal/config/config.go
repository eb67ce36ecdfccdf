// ABOUTME: Centralized configuration for the tubewise CLI, MCP server, and HTTP API
// ABOUTME: Defaults, then an optional YAML file, then environment variables, then validation
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/harper/tubewise/internal/util"
	"gopkg.in/yaml.v3"
)

// Provider names
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Transcript source names
const (
	SourceYouTube = "youtube"
	SourceFile    = "file"
)

// Config holds all configuration for tubewise
type Config struct {
	// Generation settings. Any OpenAI-compatible endpoint works; the default is Groq.
	LLMProvider string  `yaml:"llm_provider"`
	LLMBaseURL  string  `yaml:"llm_base_url"`
	LLMAPIKey   string  `yaml:"llm_api_key"`
	LLMModel    string  `yaml:"llm_model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`

	// Embedding settings
	EmbeddingProvider string `yaml:"embedding_provider"`
	EmbeddingBaseURL  string `yaml:"embedding_base_url"`
	EmbeddingAPIKey   string `yaml:"embedding_api_key"`
	EmbeddingModel    string `yaml:"embedding_model"`

	// Ollama settings, used when either provider is "ollama"
	OllamaURL            string `yaml:"ollama_url"`
	OllamaModel          string `yaml:"ollama_model"`
	OllamaEmbeddingModel string `yaml:"ollama_embedding_model"`

	// Retrieval settings
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`

	// Call settings
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`

	// Transcript settings
	TranscriptSource    string   `yaml:"transcript_source"`
	TranscriptDir       string   `yaml:"transcript_dir"`
	TranscriptLanguages []string `yaml:"transcript_languages"`

	// Surface settings
	HTTPAddr  string `yaml:"http_addr"`
	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LLMProvider:          ProviderOpenAI,
		LLMBaseURL:           "https://api.groq.com/openai/v1",
		LLMModel:             "llama3-8b-8192",
		Temperature:          0.7,
		MaxTokens:            4096,
		EmbeddingProvider:    ProviderOpenAI,
		EmbeddingBaseURL:     "https://api.openai.com/v1",
		EmbeddingModel:       "text-embedding-3-small",
		OllamaURL:            "http://localhost:11434",
		OllamaModel:          "llama3",
		OllamaEmbeddingModel: "nomic-embed-text",
		ChunkSize:            500,
		ChunkOverlap:         50,
		TopK:                 3,
		Timeout:              30 * time.Second,
		MaxRetries:           3,
		RetryDelay:           2 * time.Second,
		TranscriptSource:     SourceYouTube,
		TranscriptLanguages:  []string{"en"},
		HTTPAddr:             ":8000",
		LogLevel:             "info",
		LogPretty:            true,
	}
}

// Load reads configuration from environment variables over the defaults
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads a YAML file (if path is non-empty) and then applies environment overrides
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", c.LLMProvider))
	c.LLMBaseURL = getEnv("LLM_BASE_URL", c.LLMBaseURL)
	c.LLMAPIKey = firstEnv([]string{"LLM_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY"}, c.LLMAPIKey)
	c.LLMModel = getEnv("LLM_MODEL", c.LLMModel)
	c.Temperature = getEnvFloat("LLM_TEMPERATURE", c.Temperature)
	c.MaxTokens = getEnvInt("LLM_MAX_TOKENS", c.MaxTokens)

	c.EmbeddingProvider = strings.ToLower(getEnv("EMBEDDING_PROVIDER", c.EmbeddingProvider))
	c.EmbeddingBaseURL = getEnv("EMBEDDING_BASE_URL", c.EmbeddingBaseURL)
	c.EmbeddingAPIKey = firstEnv([]string{"EMBEDDING_API_KEY", "OPENAI_API_KEY"}, c.EmbeddingAPIKey)
	c.EmbeddingModel = getEnv("EMBEDDING_MODEL", c.EmbeddingModel)

	c.OllamaURL = getEnv("OLLAMA_URL", c.OllamaURL)
	c.OllamaModel = getEnv("OLLAMA_MODEL", c.OllamaModel)
	c.OllamaEmbeddingModel = getEnv("OLLAMA_EMBEDDING_MODEL", c.OllamaEmbeddingModel)

	c.ChunkSize = getEnvInt("CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = getEnvInt("CHUNK_OVERLAP", c.ChunkOverlap)
	c.TopK = getEnvInt("TOP_K", c.TopK)

	c.Timeout = getEnvDuration("REQUEST_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("RETRY_DELAY", c.RetryDelay)

	c.TranscriptSource = strings.ToLower(getEnv("TRANSCRIPT_SOURCE", c.TranscriptSource))
	c.TranscriptDir = getEnv("TRANSCRIPT_DIR", c.TranscriptDir)
	c.TranscriptLanguages = getEnvList("TRANSCRIPT_LANGS", c.TranscriptLanguages)

	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPretty = getEnvBool("LOG_PRETTY", c.LogPretty)
}

func (c *Config) Validate() error {
	if c.LLMProvider != ProviderOpenAI && c.LLMProvider != ProviderOllama {
		return fmt.Errorf("LLM_PROVIDER must be openai or ollama, got %q", c.LLMProvider)
	}
	if c.EmbeddingProvider != ProviderOpenAI && c.EmbeddingProvider != ProviderOllama {
		return fmt.Errorf("EMBEDDING_PROVIDER must be openai or ollama, got %q", c.EmbeddingProvider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be 0-%d, got %d", c.ChunkSize-1, c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	switch c.TranscriptSource {
	case SourceYouTube:
	case SourceFile:
		if c.TranscriptDir == "" {
			return fmt.Errorf("TRANSCRIPT_DIR is required when TRANSCRIPT_SOURCE=file")
		}
	default:
		return fmt.Errorf("TRANSCRIPT_SOURCE must be youtube or file, got %q", c.TranscriptSource)
	}
	return nil
}

// RetryPolicy derives the call retry policy from the configured limits
func (c *Config) RetryPolicy() util.RetryPolicy {
	p := util.DefaultRetryPolicy()
	p.MaxRetries = c.MaxRetries
	p.BaseDelay = c.RetryDelay
	p.AttemptTimeout = c.Timeout
	return p
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func firstEnv(keys []string, defaultVal string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
