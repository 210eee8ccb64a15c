package index

import (
	"errors"
	"fmt"
	"sort"
)

// Flat is an exact brute-force index over dense vectors using squared L2
// distance. At a few thousand units exact search is fast enough, and keeps
// results reproducible and debuggable.
type Flat struct {
	dimension int
	vectors   [][]float32
}

// Hit is one nearest-neighbor match: the ordinal position of the vector and
// its squared L2 distance to the query.
type Hit struct {
	Ordinal  int
	Distance float64
}

// DimensionMismatchError reports a vector whose dimension does not match the
// index. Embeddings from a different model are meaningless to search.
type DimensionMismatchError struct {
	Expected, Got int
}

func (e DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: expected %d, got %d", e.Expected, e.Got)
}

// NewFlat builds an index over the given vectors. All vectors must share the
// stated dimension.
func NewFlat(dimension int, vectors [][]float32) (*Flat, error) {
	if dimension <= 0 {
		return nil, errors.New("invalid dimension")
	}
	for _, v := range vectors {
		if len(v) != dimension {
			return nil, DimensionMismatchError{Expected: dimension, Got: len(v)}
		}
	}
	return &Flat{dimension: dimension, vectors: vectors}, nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Dimension returns the vector dimension of the index.
func (f *Flat) Dimension() int { return f.dimension }

// Search returns up to k nearest neighbors of the query, sorted by ascending
// distance (ties broken by ordinal). Searching an empty index is an error:
// an empty corpus is legal to build but not to query.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(f.vectors) == 0 {
		return nil, errors.New("index contains no units")
	}
	if len(query) != f.dimension {
		return nil, DimensionMismatchError{Expected: f.dimension, Got: len(query)}
	}
	if k < 1 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		var d float64
		for j := range v {
			diff := float64(v[j]) - float64(query[j])
			d += diff * diff
		}
		hits[i] = Hit{Ordinal: i, Distance: d}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}
