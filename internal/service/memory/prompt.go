package memory

import (
	"strings"

	"github.com/sandevgo/journal/internal/core"
)

const SystemInstruction = "You are an AI assistant with access to past memories.\n" +
	"When memories are provided, you MUST use them to answer.\n" +
	"If memories are relevant, refer to them naturally.\n" +
	"If not, answer normally.\n"

const memoriesHeader = "PAST MEMORIES:\n"

// Compose builds the model input: the fixed instruction, one memory block
// when memories is non-empty, then history as given.
func Compose(history []core.Message, memories []string) []core.Message {
	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: SystemInstruction})

	if len(memories) > 0 {
		lines := make([]string, len(memories))
		for i, m := range memories {
			lines[i] = "- " + m
		}
		messages = append(messages, core.Message{
			Role:    core.RoleSystem,
			Content: memoriesHeader + strings.Join(lines, "\n"),
		})
	}

	return append(messages, history...)
}
