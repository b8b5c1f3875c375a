package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/journal/internal/core"
)

func TestCompose(t *testing.T) {
	history := []core.Message{
		{Role: core.RoleUser, Content: "My favorite color is blue"},
		{Role: core.RoleAssistant, Content: "Got it."},
		{Role: core.RoleUser, Content: "What is my favorite color?"},
	}

	tests := []struct {
		name     string
		history  []core.Message
		memories []string
		want     []core.Message
	}{
		{
			name:    "no memories",
			history: history,
			want: append([]core.Message{
				{Role: core.RoleSystem, Content: SystemInstruction},
			}, history...),
		},
		{
			name:     "memories in received order",
			history:  history,
			memories: []string{"My favorite color is blue", "I like the sea a lot, really"},
			want: append([]core.Message{
				{Role: core.RoleSystem, Content: SystemInstruction},
				{Role: core.RoleSystem, Content: "PAST MEMORIES:\n- My favorite color is blue\n- I like the sea a lot, really"},
			}, history...),
		},
		{
			name:     "duplicates kept",
			memories: []string{"same memory, twice over", "same memory, twice over"},
			want: []core.Message{
				{Role: core.RoleSystem, Content: SystemInstruction},
				{Role: core.RoleSystem, Content: "PAST MEMORIES:\n- same memory, twice over\n- same memory, twice over"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.history, tt.memories)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompose_DoesNotAliasHistory(t *testing.T) {
	history := make([]core.Message, 1, 8)
	history[0] = core.Message{Role: core.RoleUser, Content: "hi"}

	got := Compose(history, []string{"a memory longer than twenty"})
	require.Len(t, got, 3)

	got[2].Content = "changed"
	assert.Equal(t, "hi", history[0].Content)
}
