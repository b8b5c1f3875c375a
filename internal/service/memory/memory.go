package memory

import (
	"context"
	"fmt"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/pkg/log"
)

// Writer mirrors stored messages into the memory index.
type Writer struct {
	gateway *Gateway
	index   core.MemoryIndex
}

func NewWriter(gateway *Gateway, index core.MemoryIndex) *Writer {
	return &Writer{gateway: gateway, index: index}
}

// Remember embeds msg and upserts it under its message key. Calling it
// twice for the same message leaves a single record.
func (w *Writer) Remember(ctx context.Context, msg core.StoredMessage) error {
	vec, err := w.gateway.Embed(ctx, msg.Content)
	if err != nil {
		return fmt.Errorf("failed to embed message %d: %w", msg.ID, err)
	}

	rec := core.MemoryRecord{
		Key:       core.MemoryKey(msg.ID),
		Vector:    vec,
		Text:      msg.Content,
		SessionID: msg.SessionID,
		Role:      msg.Role,
	}
	if err := w.index.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("failed to index message %d: %w", msg.ID, err)
	}

	log.FromCtx(ctx).Debug().
		Str("key", rec.Key).
		Str("session_id", rec.SessionID).
		Int("dim", len(vec)).
		Msg("memory stored")

	return nil
}
