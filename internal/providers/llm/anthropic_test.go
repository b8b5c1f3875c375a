package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/journal/internal/core"
)

func TestAnthropic_Chat(t *testing.T) {
	var got struct {
		Model  string `json:"model"`
		System []struct {
			Text string `json:"text"`
		} `json:"system"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "Blue, "}, {"type": "text", "text": "as you said."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	a := NewAnthropic("key", srv.URL, "claude-test", time.Second)
	reply, err := a.Chat(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "instructions"},
		{Role: core.RoleSystem, Content: "PAST MEMORIES:\n- blue"},
		{Role: core.RoleUser, Content: "What is my favorite color?"},
	})
	require.NoError(t, err)
	assert.Equal(t, core.Message{Role: core.RoleAssistant, Content: "Blue, as you said."}, reply)

	assert.Equal(t, "claude-test", got.Model)
	require.Len(t, got.System, 2)
	assert.Equal(t, "instructions", got.System[0].Text)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestAnthropic_ErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropic("key", srv.URL, "claude-test", time.Second).
		Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, core.IsTransport(err))
}
