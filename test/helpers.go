package test

import (
	"os"
	"testing"
)

const (
	OllamaURLEnv   = "JOURNAL_TEST_OLLAMA_URL"
	ChatModel      = "llama3.1"
	EmbeddingModel = "all-minilm"
)

// GetOllamaURL skips the test unless a live Ollama server is configured.
func GetOllamaURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv(OllamaURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping live Ollama test", OllamaURLEnv)
	}
	return url
}

func ModelFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
