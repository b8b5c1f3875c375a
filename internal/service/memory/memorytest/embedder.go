// Package memorytest provides deterministic stand-ins for the embedding
// capability.
package memorytest

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"
)

const Dimension = 64

// BagOfWords hashes lowercased words into a fixed number of buckets.
// Texts sharing words get similar vectors; it never returns a zero vector.
type BagOfWords struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

func (b *BagOfWords) Embed(_ context.Context, text string) ([]float32, error) {
	b.mu.Lock()
	b.Calls++
	err := b.Err
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return Vector(text), nil
}

func Vector(text string) []float32 {
	vec := make([]float32, Dimension)
	vec[0] = 0.01

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[1+int(h.Sum32()%(Dimension-1))]++
	}
	return vec
}
