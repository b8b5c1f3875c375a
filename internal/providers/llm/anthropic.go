package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sandevgo/journal/internal/core"
)

const (
	serviceAnthropic   = "anthropic"
	anthropicMaxTokens = 4096
)

type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(apiKey, baseURL, model string, timeout time.Duration) *Anthropic {
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

	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Chat lifts system messages into the request's system prompt, since the
// Messages API accepts only user and assistant turns.
func (a *Anthropic) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	var (
		system   []anthropic.TextBlockParam
		messages []anthropic.MessageParam
	)

	for _, m := range history {
		switch m.Role {
		case core.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case core.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		Messages:  messages,
	}
	if len(system) > 0 {
		params.System = system
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return core.Message{}, core.NewTransportError(serviceAnthropic, "chat", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return core.Message{Role: core.RoleAssistant, Content: text.String()}, nil
}
