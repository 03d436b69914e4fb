package chromemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex("", "products-test", true)
	require.NoError(t, err)
	return idx
}

func TestQuery_TopKAscendingDistance(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	err := idx.Upsert(ctx,
		[]int64{1, 2, 3},
		[]string{"doc one", "doc two", "doc three"},
		[][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0.6, 0.8, 0},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Count())

	hits, err := idx.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(1), hits[0].ID)
	assert.Equal(t, int64(3), hits[1].ID)
	assert.LessOrEqual(t, hits[0].Distance, hits[1].Distance)
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-5)
}

func TestQuery_TopKClampedToCollectionSize(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	err := idx.Upsert(ctx, []int64{7}, []string{"only doc"}, [][]float32{{0, 0, 1}})
	require.NoError(t, err)

	hits, err := idx.Query(ctx, []float32{0, 0, 1}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestQuery_EmptyCollection(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Query(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestUpsert_ReplacesById(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, []int64{1}, []string{"v1"}, [][]float32{{1, 0, 0}}))
	require.NoError(t, idx.Upsert(ctx, []int64{1}, []string{"v2"}, [][]float32{{0, 1, 0}}))
	assert.Equal(t, 1, idx.Count())

	hits, err := idx.Query(ctx, []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(1), hits[0].ID)
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-5)
}

func TestUpsert_MismatchedBatch(t *testing.T) {
	idx := newTestIndex(t)

	err := idx.Upsert(context.Background(), []int64{1, 2}, []string{"one"}, [][]float32{{1}})
	require.Error(t, err)
}
