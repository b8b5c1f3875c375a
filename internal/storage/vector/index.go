package vector

import (
	"context"
	"fmt"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/pkg/log"
)

const CollectionName = "journal_memories"

const serviceIndex = "memory-index"

const (
	metaSessionID = "session_id"
	metaRole      = "role"
)

// Index is the memory index backed by an embedded chromem collection.
// All records share one collection; session scoping is a metadata filter.
type Index struct {
	db  *chromem.DB
	col *chromem.Collection
}

// New opens the index. An empty path keeps everything in memory.
func New(ctx context.Context, path string, compress bool) (*Index, error) {
	var (
		db  *chromem.DB
		err error
	)

	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector store: %w", err)
		}
	}

	// Embeddings are always supplied by the caller, so no embedding func.
	col, err := db.GetOrCreateCollection(CollectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", CollectionName, err)
	}

	log.FromCtx(ctx).Debug().
		Str("path", path).
		Int("records", col.Count()).
		Msg("memory index opened")

	return &Index{db: db, col: col}, nil
}

// Upsert stores rec under rec.Key, replacing any previous record with that key.
func (i *Index) Upsert(ctx context.Context, rec core.MemoryRecord) error {
	doc := chromem.Document{
		ID:        rec.Key,
		Content:   rec.Text,
		Embedding: rec.Vector,
		Metadata: map[string]string{
			metaSessionID: rec.SessionID,
			metaRole:      rec.Role,
		},
	}

	if err := i.col.AddDocument(ctx, doc); err != nil {
		return core.NewTransportError(serviceIndex, "upsert", fmt.Errorf("add document %s: %w", rec.Key, err))
	}
	return nil
}

// Query returns up to k records of sessionID closest to vector, best first.
func (i *Index) Query(ctx context.Context, vector []float32, sessionID string, k int) ([]core.MemoryHit, error) {
	if k <= 0 {
		return nil, nil
	}

	// chromem rejects nResults larger than the collection.
	if n := i.col.Count(); k > n {
		k = n
	}
	if k == 0 {
		return nil, nil
	}

	where := map[string]string{metaSessionID: sessionID}

	var (
		results []chromem.Result
		err     error
	)
	for limit := k; limit >= 1; limit-- {
		results, err = i.col.QueryEmbedding(ctx, vector, limit, where, nil)
		if err == nil || !isInsufficientDocs(err) {
			break
		}
	}
	if err != nil {
		if isInsufficientDocs(err) {
			return nil, nil
		}
		return nil, core.NewTransportError(serviceIndex, "query", err)
	}

	hits := make([]core.MemoryHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, core.MemoryHit{
			Key:   r.ID,
			Text:  r.Content,
			Role:  r.Metadata[metaRole],
			Score: r.Similarity,
		})
	}

	log.FromCtx(ctx).Debug().
		Str("session_id", sessionID).
		Int("k", k).
		Int("hits", len(hits)).
		Msg("memory index queried")

	return hits, nil
}

func (i *Index) Count() int {
	return i.col.Count()
}

func isInsufficientDocs(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
