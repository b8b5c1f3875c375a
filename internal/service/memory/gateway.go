package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sandevgo/journal/internal/core"
)

var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Gateway is the single entry point for text embeddings. It never
// substitutes a fallback vector: a failed or empty embedding is an error.
type Gateway struct {
	embedder core.Embedder

	mu  sync.Mutex
	dim int
}

func NewGateway(embedder core.Embedder) *Gateway {
	return &Gateway{embedder: embedder}
}

func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := g.embedder.Embed(ctx, text)
	if err != nil {
		if core.IsTransport(err) {
			return nil, err
		}
		return nil, core.NewTransportError("embedding", "embed", err)
	}
	if len(vec) == 0 {
		return nil, core.NewTransportError("embedding", "embed", errors.New("empty vector"))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dim == 0 {
		g.dim = len(vec)
	} else if len(vec) != g.dim {
		return nil, core.NewTransportError("embedding", "embed", fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), g.dim))
	}

	return vec, nil
}

// Dimension is zero until the first successful embedding.
func (g *Gateway) Dimension() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dim
}
