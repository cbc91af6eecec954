package index

import (
	"cmp"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"slices"
)

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// exhaustive inner-product index over dense float32 vectors.
// positions are assigned in insertion order and never change.
type FlatIP struct {
	dim     int
	vectors [][]float32
}

// a search result: the stored position and its inner product with the query
type Hit struct {
	Position int
	Score    float32
}

func NewFlatIP(dim int) *FlatIP {
	return &FlatIP{dim: dim}
}

func (ix *FlatIP) Dim() int {
	return ix.dim
}

func (ix *FlatIP) Len() int {
	return len(ix.vectors)
}

// returns a copy of the vector stored at position i
func (ix *FlatIP) Vector(i int) ([]float32, bool) {
	if i < 0 || i >= len(ix.vectors) {
		return nil, false
	}

	return slices.Clone(ix.vectors[i]), true
}

// appends vectors; either all are added or none.
func (ix *FlatIP) Add(vectors ...[]float32) error {
	for i, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, index has %d", ErrDimensionMismatch, i, len(v), ix.dim)
		}
	}

	for _, v := range vectors {
		stored := make([]float32, len(v))
		copy(stored, v)
		ix.vectors = append(ix.vectors, stored)
	}

	return nil
}

// returns up to k hits by descending inner product. equal scores keep ascending position order.
func (ix *FlatIP) Search(query []float32, k int) ([]Hit, error) {
	if k <= 0 || len(ix.vectors) == 0 {
		return nil, nil
	}

	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", ErrDimensionMismatch, len(query), ix.dim)
	}

	hits := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = Hit{Position: i, Score: dot(query, v)}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if k < len(hits) {
		hits = hits[:k]
	}

	return hits, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}

// on-disk form of the index
type blob struct {
	Version int
	Dim     int
	Vectors [][]float32
}

const blobVersion = 1

// writes the index as an opaque gob blob
func (ix *FlatIP) Encode(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(blob{Version: blobVersion, Dim: ix.dim, Vectors: ix.vectors}); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	return nil
}

// reads an index written by Encode
func Decode(r io.Reader) (*FlatIP, error) {
	var b blob
	if err := gob.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}

	if b.Version != blobVersion {
		return nil, fmt.Errorf("unsupported index version %d", b.Version)
	}

	ix := NewFlatIP(b.Dim)
	if err := ix.Add(b.Vectors...); err != nil {
		return nil, err
	}

	return ix, nil
}
