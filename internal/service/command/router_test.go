package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/journal/internal/core"
)

type mockJournal struct {
	RecallPreviewFunc func(ctx context.Context, query, sessionID string) ([]string, error)
	RenameSessionFunc func(ctx context.Context, sessionID, name string) error
	SessionNameFunc   func(ctx context.Context, sessionID string) (string, error)
}

func (m *mockJournal) RecallPreview(ctx context.Context, query, sessionID string) ([]string, error) {
	return m.RecallPreviewFunc(ctx, query, sessionID)
}

func (m *mockJournal) RenameSession(ctx context.Context, sessionID, name string) error {
	return m.RenameSessionFunc(ctx, sessionID, name)
}

func (m *mockJournal) SessionName(ctx context.Context, sessionID string) (string, error) {
	return m.SessionNameFunc(ctx, sessionID)
}

func TestRouter_Execute(t *testing.T) {
	var renamed string
	j := &mockJournal{
		RecallPreviewFunc: func(_ context.Context, query, sessionID string) ([]string, error) {
			assert.Equal(t, "s1", sessionID)
			if query == "nothing" {
				return nil, nil
			}
			return []string{"My favorite color is blue"}, nil
		},
		RenameSessionFunc: func(_ context.Context, sessionID, name string) error {
			if sessionID != "s1" {
				return fmt.Errorf("session %s: %w", sessionID, core.ErrNotFound)
			}
			renamed = name
			return nil
		},
		SessionNameFunc: func(context.Context, string) (string, error) { return "Groceries", nil },
	}
	r := New(NewCommands(j))
	ctx := context.Background()

	tests := []struct {
		name     string
		session  string
		input    string
		handled  bool
		contains string
	}{
		{name: "plain text", session: "s1", input: "hello there", handled: false},
		{name: "lone slash", session: "s1", input: "/", handled: false},
		{name: "unknown", session: "s1", input: "/model gpt", handled: true, contains: "Unknown command: /model"},
		{name: "help", session: "s1", input: "/help", handled: true, contains: "/recall"},
		{name: "recall", session: "s1", input: "/recall favorite color", handled: true, contains: "› My favorite color is blue"},
		{name: "recall empty", session: "s1", input: "/recall nothing", handled: true, contains: "No memories found"},
		{name: "recall usage", session: "s1", input: "/recall", handled: true, contains: "Usage"},
		{name: "rename", session: "s1", input: "/rename Weekly groceries", handled: true, contains: "Weekly groceries"},
		{name: "rename unknown", session: "s2", input: "/rename x", handled: true, contains: "Command Error"},
		{name: "name", session: "s1", input: "  /name  ", handled: true, contains: "Groceries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, handled := r.Execute(ctx, tt.session, tt.input)
			require.Equal(t, tt.handled, handled)
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
			}
		})
	}

	assert.Equal(t, "Weekly groceries", renamed)
}

func TestRouter_ListCommandsSorted(t *testing.T) {
	r := New(NewCommands(&mockJournal{}))
	var names []string
	for _, c := range r.ListCommands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"name", "recall", "rename"}, names)
}
