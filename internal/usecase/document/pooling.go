package document

import (
	"errors"
	"fmt"
)

// ErrNoVectors is returned when mean pooling is asked to reduce an empty
// collection; the mean of zero vectors is undefined.
var ErrNoVectors = errors.New("cannot mean-pool zero vectors")

// MeanPool reduces equal-length vectors to one vector of the same length
// whose components are the arithmetic mean across the inputs.
func MeanPool(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}

	dim := len(vectors[0])
	sums := make([]float64, dim)

	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("vector %d has length %d, want %d", i, len(vec), dim)
		}
		for j, v := range vec {
			sums[j] += float64(v)
		}
	}

	n := float64(len(vectors))
	mean := make([]float32, dim)
	for j, s := range sums {
		mean[j] = float32(s / n)
	}

	return mean, nil
}
