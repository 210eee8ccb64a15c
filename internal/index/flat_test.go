package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat_SearchOrdersByDistance(t *testing.T) {
	flat, err := NewFlat(3, [][]float32{
		{0, 1, 0},
		{1, 0, 0},
		{0.9, 0.1, 0},
	})
	require.NoError(t, err)

	hits, err := flat.Search([]float32{1, 0, 0}, 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Ordinal)
	assert.Equal(t, 2, hits[1].Ordinal)
	assert.Equal(t, 0.0, hits[0].Distance)
	assert.Less(t, hits[0].Distance, hits[1].Distance)
}

func TestFlat_SearchClampsK(t *testing.T) {
	flat, err := NewFlat(2, [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits, err := flat.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestFlat_EmptyIndexSearchFails(t *testing.T) {
	flat, err := NewFlat(4, nil)
	require.NoError(t, err)

	_, err = flat.Search([]float32{0, 0, 0, 0}, 1)
	assert.Error(t, err)
}

func TestFlat_DimensionMismatch(t *testing.T) {
	_, err := NewFlat(3, [][]float32{{1, 0}})
	assert.ErrorAs(t, err, &DimensionMismatchError{})

	flat, err := NewFlat(3, [][]float32{{1, 0, 0}})
	require.NoError(t, err)
	_, err = flat.Search([]float32{1, 0}, 1)
	assert.ErrorAs(t, err, &DimensionMismatchError{})
}

func TestFlat_InvalidK(t *testing.T) {
	flat, err := NewFlat(2, [][]float32{{1, 0}})
	require.NoError(t, err)

	_, err = flat.Search([]float32{1, 0}, 0)
	assert.Error(t, err)
}
