package memory

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/pkg/log"
)

const (
	// MinMemoryLength is the longest text, in runes, still considered too
	// short to be a useful memory.
	MinMemoryLength = 20
	DefaultRecallK  = 5
)

type Recaller struct {
	gateway   *Gateway
	index     core.MemoryIndex
	minLength int
}

// NewRecaller builds a Recaller. A negative minLength selects MinMemoryLength.
func NewRecaller(gateway *Gateway, index core.MemoryIndex, minLength int) *Recaller {
	if minLength < 0 {
		minLength = MinMemoryLength
	}
	return &Recaller{gateway: gateway, index: index, minLength: minLength}
}

// Recall returns up to k texts from sessionID most similar to query,
// best match first, with short texts removed.
func (r *Recaller) Recall(ctx context.Context, query, sessionID string, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultRecallK
	}

	vec, err := r.gateway.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := r.index.Query(ctx, vec, sessionID, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}

	memories := make([]string, 0, len(hits))
	for _, h := range hits {
		if utf8.RuneCountInString(h.Text) <= r.minLength {
			continue
		}
		memories = append(memories, h.Text)
	}

	log.FromCtx(ctx).Debug().
		Str("session_id", sessionID).
		Int("hits", len(hits)).
		Int("kept", len(memories)).
		Msg("memories recalled")

	return memories, nil
}
