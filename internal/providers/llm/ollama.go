package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sandevgo/journal/internal/core"
)

const serviceOllama = "ollama"

// Ollama talks to the native Ollama API. The same type serves chat and
// embeddings; each instance is bound to one model.
type Ollama struct {
	baseProvider
}

func NewOllama(baseURL, apiKey, model string, timeout time.Duration) *Ollama {
	return &Ollama{
		baseProvider: newBaseProvider(baseURL, apiKey, model, timeout),
	}
}

func (o *Ollama) headers() map[string]string {
	if o.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + o.apiKey}
}

func (o *Ollama) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": history,
		"stream":   false,
	}

	var result struct {
		Message *core.Message `json:"message"`
	}
	if err := o.doJSON(ctx, http.MethodPost, "/api/chat", payload, o.headers(), &result); err != nil {
		return core.Message{}, core.NewTransportError(serviceOllama, "chat", err)
	}

	if result.Message == nil {
		return core.Message{}, core.NewTransportError(serviceOllama, "chat", errors.New("response has no message"))
	}

	reply := *result.Message
	if reply.Role == "" {
		reply.Role = core.RoleAssistant
	}
	return reply, nil
}

func (o *Ollama) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]any{
		"model": o.model,
		"input": text,
	}

	var result struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := o.doJSON(ctx, http.MethodPost, "/api/embed", payload, o.headers(), &result); err != nil {
		return nil, core.NewTransportError(serviceOllama, "embed", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0]) == 0 {
		return nil, core.NewTransportError(serviceOllama, "embed", errors.New("empty embedding"))
	}
	return result.Embeddings[0], nil
}

// Ping checks that the server answers. It does not check that the model is pulled.
func (o *Ollama) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := o.doJSON(ctx, http.MethodGet, "/api/tags", nil, o.headers(), nil); err != nil {
		return core.NewTransportError(serviceOllama, "ping", err)
	}
	return nil
}
