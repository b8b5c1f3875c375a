package llm

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sandevgo/journal/internal/core"
)

const serviceOpenAI = "openai"

// OpenAI covers api.openai.com and any server speaking the same protocol
// when baseURL is set.
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string, timeout time.Duration) *OpenAI {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *OpenAI) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	})
	if err != nil {
		return core.Message{}, core.NewTransportError(serviceOpenAI, "chat", err)
	}
	if len(resp.Choices) == 0 {
		return core.Message{}, core.NewTransportError(serviceOpenAI, "chat", errors.New("empty choices"))
	}

	return core.Message{
		Role:    core.RoleAssistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(o.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, core.NewTransportError(serviceOpenAI, "embed", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, core.NewTransportError(serviceOpenAI, "embed", errors.New("empty embedding"))
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
