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

func TestOpenAI_Chat(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "hello there"}}]
		}`))
	}))
	defer srv.Close()

	o := NewOpenAI("key", srv.URL+"/v1/", "gpt-4o-mini", time.Second)
	reply, err := o.Chat(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "sys"},
		{Role: core.RoleUser, Content: "hi"},
		{Role: core.RoleAssistant, Content: "hey"},
		{Role: core.RoleUser, Content: "again"},
	})
	require.NoError(t, err)
	assert.Equal(t, core.Message{Role: core.RoleAssistant, Content: "hello there"}, reply)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "again", got.Messages[3].Content)
}

func TestOpenAI_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"model": "text-embedding-3-small",
			"data": [{"object": "embedding", "index": 0, "embedding": [0.25, 0.5, -1]}],
			"usage": {"prompt_tokens": 1, "total_tokens": 1}
		}`))
	}))
	defer srv.Close()

	vec, err := NewOpenAI("key", srv.URL+"/v1/", "text-embedding-3-small", time.Second).Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5, -1}, vec)
}

func TestOpenAI_ErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	o := NewOpenAI("key", srv.URL+"/v1/", "m", time.Second)

	_, err := o.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, core.IsTransport(err))

	_, err = o.Embed(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, core.IsTransport(err))
}
