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

func TestOllama_Chat(t *testing.T) {
	var got struct {
		Model    string         `json:"model"`
		Messages []core.Message `json:"messages"`
		Stream   bool           `json:"stream"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Your favorite color is blue."},"done":true}`))
	}))
	defer srv.Close()

	o := NewOllama(srv.URL+"/", "secret", "llama3.1", time.Second)
	history := []core.Message{
		{Role: core.RoleSystem, Content: "be brief"},
		{Role: core.RoleUser, Content: "What is my favorite color?"},
	}

	reply, err := o.Chat(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, core.RoleAssistant, reply.Role)
	assert.Equal(t, "Your favorite color is blue.", reply.Content)

	assert.Equal(t, "llama3.1", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, history, got.Messages)
}

func TestOllama_ChatWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"done":true}`))
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "", "llama3.1", time.Second)

	_, err := o.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hello"}})
	require.Error(t, err)
	assert.True(t, core.IsTransport(err))
}

func TestOllama_Embed(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    []float32
		wantErr bool
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   `{"model":"all-minilm","embeddings":[[0.5,-0.25,1]]}`,
			want:   []float32{0.5, -0.25, 1},
		},
		{
			name:    "empty",
			status:  http.StatusOK,
			body:    `{"embeddings":[]}`,
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"model not found"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/embed", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			vec, err := NewOllama(srv.URL, "", "all-minilm", time.Second).Embed(context.Background(), "hello")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsTransport(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, vec)
		})
	}
}

func TestOllama_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))

	o := NewOllama(srv.URL, "", "llama3.1", time.Second)
	require.NoError(t, o.Ping(context.Background()))

	srv.Close()
	err := o.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsTransport(err))
}
