// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies defaults, YAML loading, environment overrides, and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LLMProvider != ProviderOpenAI {
		t.Errorf("LLMProvider = %s, want openai", cfg.LLMProvider)
	}
	if cfg.LLMBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("LLMBaseURL = %s, want groq endpoint", cfg.LLMBaseURL)
	}
	if cfg.LLMModel != "llama3-8b-8192" {
		t.Errorf("LLMModel = %s, want llama3-8b-8192", cfg.LLMModel)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %f, want 0.7", cfg.Temperature)
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.MaxTokens)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 50 {
		t.Errorf("ChunkOverlap = %d, want 50", cfg.ChunkOverlap)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.TranscriptSource != SourceYouTube {
		t.Errorf("TranscriptSource = %s, want youtube", cfg.TranscriptSource)
	}
	if len(cfg.TranscriptLanguages) != 1 || cfg.TranscriptLanguages[0] != "en" {
		t.Errorf("TranscriptLanguages = %v, want [en]", cfg.TranscriptLanguages)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %s, want :8000", cfg.HTTPAddr)
	}
	if cfg.LLMAPIKey != "" {
		t.Errorf("LLMAPIKey = %s, want empty", cfg.LLMAPIKey)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("LLM_PROVIDER", "Ollama")
	os.Setenv("LLM_API_KEY", "test-key")
	os.Setenv("LLM_MODEL", "mixtral")
	os.Setenv("LLM_TEMPERATURE", "0.2")
	os.Setenv("LLM_MAX_TOKENS", "1024")
	os.Setenv("CHUNK_SIZE", "800")
	os.Setenv("CHUNK_OVERLAP", "100")
	os.Setenv("TOP_K", "5")
	os.Setenv("REQUEST_TIMEOUT", "60s")
	os.Setenv("MAX_RETRIES", "5")
	os.Setenv("RETRY_DELAY", "3s")
	os.Setenv("TRANSCRIPT_LANGS", "de, en ,")
	os.Setenv("LOG_PRETTY", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LLMProvider != ProviderOllama {
		t.Errorf("LLMProvider = %s, want ollama", cfg.LLMProvider)
	}
	if cfg.LLMAPIKey != "test-key" {
		t.Errorf("LLMAPIKey = %s, want test-key", cfg.LLMAPIKey)
	}
	if cfg.LLMModel != "mixtral" {
		t.Errorf("LLMModel = %s, want mixtral", cfg.LLMModel)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Temperature = %f, want 0.2", cfg.Temperature)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want 1024", cfg.MaxTokens)
	}
	if cfg.ChunkSize != 800 || cfg.ChunkOverlap != 100 || cfg.TopK != 5 {
		t.Errorf("chunking = (%d, %d, %d), want (800, 100, 5)", cfg.ChunkSize, cfg.ChunkOverlap, cfg.TopK)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if len(cfg.TranscriptLanguages) != 2 || cfg.TranscriptLanguages[0] != "de" || cfg.TranscriptLanguages[1] != "en" {
		t.Errorf("TranscriptLanguages = %v, want [de en]", cfg.TranscriptLanguages)
	}
	if cfg.LogPretty {
		t.Error("LogPretty = true, want false")
	}
}

func TestLoad_APIKeyFallbacks(t *testing.T) {
	os.Clearenv()
	os.Setenv("GROQ_API_KEY", "groq-key")
	os.Setenv("OPENAI_API_KEY", "openai-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LLMAPIKey != "groq-key" {
		t.Errorf("LLMAPIKey = %s, want groq-key", cfg.LLMAPIKey)
	}
	if cfg.EmbeddingAPIKey != "openai-key" {
		t.Errorf("EmbeddingAPIKey = %s, want openai-key", cfg.EmbeddingAPIKey)
	}
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), "tubewise.yaml")
	content := `llm_model: llama-3.1-8b-instant
top_k: 4
timeout: 45s
transcript_source: file
transcript_dir: /srv/transcripts
transcript_languages: [fr, en]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	os.Setenv("TOP_K", "6")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.LLMModel != "llama-3.1-8b-instant" {
		t.Errorf("LLMModel = %s, want llama-3.1-8b-instant", cfg.LLMModel)
	}
	if cfg.TopK != 6 {
		t.Errorf("TopK = %d, want 6 (env overrides file)", cfg.TopK)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
	}
	if cfg.TranscriptSource != SourceFile || cfg.TranscriptDir != "/srv/transcripts" {
		t.Errorf("transcript = (%s, %s), want (file, /srv/transcripts)", cfg.TranscriptSource, cfg.TranscriptDir)
	}
	if len(cfg.TranscriptLanguages) != 2 || cfg.TranscriptLanguages[0] != "fr" {
		t.Errorf("TranscriptLanguages = %v, want [fr en]", cfg.TranscriptLanguages)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want default 500", cfg.ChunkSize)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	os.Clearenv()
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("top_k: [not, a, number]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should fail for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown llm provider", func(c *Config) { c.LLMProvider = "bard" }},
		{"unknown embedding provider", func(c *Config) { c.EmbeddingProvider = "hf" }},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"temperature negative", func(c *Config) { c.Temperature = -0.1 }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"overlap equals size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }},
		{"zero top k", func(c *Config) { c.TopK = 0 }},
		{"too many retries", func(c *Config) { c.MaxRetries = 15 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"file source without dir", func(c *Config) { c.TranscriptSource = SourceFile }},
		{"unknown source", func(c *Config) { c.TranscriptSource = "podcast" }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestRetryPolicy(t *testing.T) {
	cfg := Default()
	cfg.MaxRetries = 1
	cfg.RetryDelay = 500 * time.Millisecond
	cfg.Timeout = 10 * time.Second

	p := cfg.RetryPolicy()
	if p.MaxRetries != 1 || p.BaseDelay != 500*time.Millisecond || p.AttemptTimeout != 10*time.Second {
		t.Errorf("RetryPolicy() = %+v", p)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal bool
		want       bool
	}{
		{"empty uses default true", "", true, true},
		{"empty uses default false", "", false, false},
		{"true", "true", false, true},
		{"1", "1", false, true},
		{"false", "false", true, false},
		{"0", "0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_BOOL", tt.value)
			}
			got := getEnvBool("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}
