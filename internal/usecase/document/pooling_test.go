package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanPoolAverages(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{3, 4, 5},
		{5, 6, 10},
	}

	mean, err := MeanPool(vectors)
	require.NoError(t, err)

	assert.Equal(t, []float32{3, 4, 6}, mean)
}

func TestMeanPoolPreservesLength(t *testing.T) {
	vectors := [][]float32{
		make([]float32, 1536),
		make([]float32, 1536),
	}

	mean, err := MeanPool(vectors)
	require.NoError(t, err)
	assert.Len(t, mean, 1536)
}

func TestMeanPoolSingleVector(t *testing.T) {
	mean, err := MeanPool([][]float32{{0.5, -0.25, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25, 1}, mean)
}

func TestMeanPoolEmptyInput(t *testing.T) {
	mean, err := MeanPool(nil)
	require.ErrorIs(t, err, ErrNoVectors)
	assert.Nil(t, mean)
}

func TestMeanPoolMismatchedLengths(t *testing.T) {
	mean, err := MeanPool([][]float32{
		{1, 2, 3},
		{1, 2},
	})
	require.Error(t, err)
	assert.Nil(t, mean)
}
