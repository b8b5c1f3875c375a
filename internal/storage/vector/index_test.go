package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/journal/internal/core"
)

func newMemoryIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(context.Background(), "", false)
	require.NoError(t, err)
	return idx
}

func TestIndex_EmptyQuery(t *testing.T) {
	idx := newMemoryIndex(t)

	hits, err := idx.Query(context.Background(), []float32{1, 0, 0}, "s1", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Zero(t, idx.Count())
}

func TestIndex_UpsertIsIdempotent(t *testing.T) {
	idx := newMemoryIndex(t)
	ctx := context.Background()

	rec := core.MemoryRecord{
		Key:       core.MemoryKey(1),
		Vector:    []float32{1, 0, 0},
		Text:      "My favorite color is blue",
		SessionID: "s1",
		Role:      core.RoleUser,
	}
	require.NoError(t, idx.Upsert(ctx, rec))
	require.NoError(t, idx.Upsert(ctx, rec))

	rec.Text = "My favorite color is green"
	require.NoError(t, idx.Upsert(ctx, rec))

	assert.Equal(t, 1, idx.Count())

	hits, err := idx.Query(ctx, []float32{1, 0, 0}, "s1", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "msg_1", hits[0].Key)
	assert.Equal(t, "My favorite color is green", hits[0].Text)
	assert.Equal(t, core.RoleUser, hits[0].Role)
}

func TestIndex_QueryRanksAndScopesBySession(t *testing.T) {
	idx := newMemoryIndex(t)
	ctx := context.Background()

	records := []core.MemoryRecord{
		{Key: "msg_1", Vector: []float32{1, 0, 0}, Text: "exact", SessionID: "s1", Role: core.RoleUser},
		{Key: "msg_2", Vector: []float32{0.7, 0.7, 0}, Text: "close", SessionID: "s1", Role: core.RoleAssistant},
		{Key: "msg_3", Vector: []float32{0, 0, 1}, Text: "far", SessionID: "s1", Role: core.RoleUser},
		{Key: "msg_4", Vector: []float32{1, 0, 0}, Text: "other session", SessionID: "s2", Role: core.RoleUser},
	}
	for _, r := range records {
		require.NoError(t, idx.Upsert(ctx, r))
	}

	hits, err := idx.Query(ctx, []float32{1, 0, 0}, "s1", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "exact", hits[0].Text)
	assert.Equal(t, "close", hits[1].Text)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)

	for _, h := range hits {
		assert.NotEqual(t, "other session", h.Text)
	}

	hits, err = idx.Query(ctx, []float32{1, 0, 0}, "s2", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "other session", hits[0].Text)

	hits, err = idx.Query(ctx, []float32{1, 0, 0}, "unknown", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_KLargerThanCollection(t *testing.T) {
	idx := newMemoryIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, core.MemoryRecord{Key: "msg_1", Vector: []float32{0, 1}, Text: "only", SessionID: "s1", Role: core.RoleUser}))

	hits, err := idx.Query(ctx, []float32{0, 1}, "s1", 50)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hits, err = idx.Query(ctx, []float32{0, 1}, "s1", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := New(ctx, dir, false)
	require.NoError(t, err)
	require.NoError(t, idx.Upsert(ctx, core.MemoryRecord{Key: "msg_7", Vector: []float32{1, 1}, Text: "persisted", SessionID: "s1", Role: core.RoleUser}))

	reopened, err := New(ctx, dir, false)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Count())

	hits, err := reopened.Query(ctx, []float32{1, 1}, "s1", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "persisted", hits[0].Text)
}
