package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/journal/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"JOURNAL_RUNTIME_PATH"`

	// HTTP transport
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`

	// Recall policy
	RecallK         int `env:"RECALL_K" envDefault:"5"`
	MinMemoryLength int `env:"MIN_MEMORY_LENGTH" envDefault:"20"`

	// Vector index
	VectorPersist  bool `env:"VECTOR_PERSIST" envDefault:"true"`
	VectorCompress bool `env:"VECTOR_COMPRESS" envDefault:"false"`

	// Providers
	LLMProvider       string        `env:"LLM_PROVIDER" envDefault:"ollama"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"llama3.1"`
	EmbeddingProvider string        `env:"EMBEDDING_PROVIDER" envDefault:"ollama"`
	EmbeddingModel    string        `env:"EMBEDDING_MODEL" envDefault:"all-minilm"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`
	StartupWait       bool          `env:"STARTUP_WAIT" envDefault:"true"`

	OllamaBaseURL   string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey    string `env:"OLLAMA_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.RuntimePath == "" {
		c.RuntimePath = GetRuntimePath()
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "journal.db")
}

// GetVectorPath is empty when the index should live in memory only.
func (c AppConfig) GetVectorPath() string {
	if !c.VectorPersist {
		return ""
	}
	return filepath.Join(c.RuntimePath, "vectors")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
