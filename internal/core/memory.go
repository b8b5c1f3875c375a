package core

import (
	"context"
	"fmt"
)

// MemoryRecord is the vector index entry mirroring one stored message.
type MemoryRecord struct {
	Key       string
	Vector    []float32
	Text      string
	SessionID string
	Role      string
}

// MemoryHit is a single similarity match, highest score first.
type MemoryHit struct {
	Key   string
	Text  string
	Role  string
	Score float32
}

type MemoryIndex interface {
	Upsert(ctx context.Context, rec MemoryRecord) error
	Query(ctx context.Context, vector []float32, sessionID string, k int) ([]MemoryHit, error)
	Count() int
}

// MemoryKey derives the index key of a message. One record per message.
func MemoryKey(messageID int64) string {
	return fmt.Sprintf("msg_%d", messageID)
}
