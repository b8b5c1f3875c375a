package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/internal/service/journal"
)

type mockJournal struct {
	SubmitTurnFunc func(ctx context.Context, req journal.TurnRequest) (journal.TurnResult, error)
}

func (m *mockJournal) SubmitTurn(ctx context.Context, req journal.TurnRequest) (journal.TurnResult, error) {
	return m.SubmitTurnFunc(ctx, req)
}

type mockRouter struct{}

func (mockRouter) Execute(_ context.Context, sessionID, input string) (string, bool) {
	if input == "/name" {
		return "session " + sessionID + "\n", true
	}
	return "", false
}

func TestReadLine_HandleLine(t *testing.T) {
	var got journal.TurnRequest
	j := &mockJournal{
		SubmitTurnFunc: func(_ context.Context, req journal.TurnRequest) (journal.TurnResult, error) {
			got = req
			if req.Content == "fail" {
				return journal.TurnResult{}, core.NewTransportError("ollama", "chat", errors.New("down"))
			}
			return journal.TurnResult{Reply: "Your favorite color is blue."}, nil
		},
	}
	r := &ReadLine{journal: j, router: mockRouter{}, sessionID: "cli-test"}
	ctx := context.Background()

	out, err := r.handleLine(ctx, "What is my favorite color?")
	require.NoError(t, err)
	assert.Equal(t, "Your favorite color is blue.", out)
	assert.Equal(t, journal.TurnRequest{SessionID: "cli-test", Role: core.RoleUser, Content: "What is my favorite color?"}, got)

	out, err = r.handleLine(ctx, "/name")
	require.NoError(t, err)
	assert.Equal(t, "session cli-test", out)

	_, err = r.handleLine(ctx, "fail")
	require.Error(t, err)
	assert.True(t, core.IsTransport(err))
}
