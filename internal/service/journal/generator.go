package journal

import (
	"context"
	"errors"
	"strings"

	"github.com/sandevgo/journal/internal/core"
)

// Generator turns a composed prompt into reply text. It never retries and
// never substitutes text for a failed call.
type Generator struct {
	chat core.ChatProvider
}

func NewGenerator(chat core.ChatProvider) *Generator {
	return &Generator{chat: chat}
}

func (g *Generator) Generate(ctx context.Context, messages []core.Message) (string, error) {
	reply, err := g.chat.Chat(ctx, messages)
	if err != nil {
		if core.IsTransport(err) {
			return "", err
		}
		return "", core.NewTransportError("llm", "chat", err)
	}
	if strings.TrimSpace(reply.Content) == "" {
		return "", core.NewTransportError("llm", "chat", errors.New("empty reply"))
	}
	return reply.Content, nil
}
