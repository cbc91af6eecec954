package index

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsWrongDimension(t *testing.T) {
	ix := NewFlatIP(2)

	err := ix.Add([]float32{1, 0}, []float32{1, 0, 0})
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, 0, ix.Len(), "a failed Add leaves the index untouched")
}

func TestSearchOrdersByInnerProduct(t *testing.T) {
	ix := NewFlatIP(2)
	require.NoError(t, ix.Add(
		[]float32{1, 0},
		[]float32{0, 1},
		[]float32{0.6, 0.8},
	))

	hits, err := ix.Search([]float32{0, 1}, 3)
	require.NoError(t, err)

	require.Len(t, hits, 3)
	assert.Equal(t, 1, hits[0].Position)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 0, hits[2].Position)
}

func TestSearchTiesKeepPositionOrder(t *testing.T) {
	ix := NewFlatIP(1)
	require.NoError(t, ix.Add([]float32{1}, []float32{2}, []float32{1}, []float32{2}))

	hits, err := ix.Search([]float32{1}, 4)
	require.NoError(t, err)

	positions := make([]int, len(hits))
	for i, h := range hits {
		positions[i] = h.Position
	}

	assert.Equal(t, []int{1, 3, 0, 2}, positions)
}

func TestSearchTruncatesToK(t *testing.T) {
	ix := NewFlatIP(1)
	require.NoError(t, ix.Add([]float32{1}, []float32{2}, []float32{3}))

	hits, err := ix.Search([]float32{1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Position)
}

func TestSearchEmptyIndex(t *testing.T) {
	hits, err := NewFlatIP(0).Search([]float32{1, 2, 3}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchQueryDimension(t *testing.T) {
	ix := NewFlatIP(2)
	require.NoError(t, ix.Add([]float32{1, 0}))

	_, err := ix.Search([]float32{1}, 1)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEncodeDecode(t *testing.T) {
	ix := NewFlatIP(3)
	require.NoError(t, ix.Add([]float32{1, 2, 3}, []float32{4, 5, 6}))

	var buf bytes.Buffer
	require.NoError(t, ix.Encode(&buf))

	loaded, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, 3, loaded.Dim())
	assert.Equal(t, 2, loaded.Len())

	want, err := ix.Search([]float32{0, 0, 1}, 2)
	require.NoError(t, err)

	got, err := loaded.Search([]float32{0, 0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewBufferString("not a gob"))
	require.Error(t, err)
}

func TestVectorReturnsCopy(t *testing.T) {
	ix := NewFlatIP(2)
	require.NoError(t, ix.Add([]float32{1, 2}))

	v, ok := ix.Vector(0)
	require.True(t, ok)
	v[0] = 99

	again, _ := ix.Vector(0)
	assert.Equal(t, []float32{1, 2}, again)

	_, ok = ix.Vector(1)
	assert.False(t, ok)
}
