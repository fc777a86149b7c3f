package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJacobi3Diagonal(t *testing.T) {
	a := [3][3]float64{{1, 0, 0}, {0, 5, 0}, {0, 0, 3}}
	d, v, err := jacobi3(&a)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{5, 3, 1}, d, "sorted eigenvalues")
	for col := 0; col < 3; col++ {
		n := v[0][col]*v[0][col] + v[1][col]*v[1][col] + v[2][col]*v[2][col]
		assert.InDelta(t, 1, n, 1e-12, "unit eigenvector %d", col)
	}
}

func TestJacobi3Symmetric(t *testing.T) {
	orig := [3][3]float64{
		{2, 1, 0},
		{1, 2, 0},
		{0, 0, 4},
	}
	a := orig
	d, v, err := jacobi3(&a)
	require.NoError(t, err)

	assert.InDelta(t, 4, d[0], 1e-12, "largest")
	assert.InDelta(t, 3, d[1], 1e-12, "middle")
	assert.InDelta(t, 1, d[2], 1e-12, "smallest")

	// Each column solves the eigenproblem of the original matrix.
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			av := orig[row][0]*v[0][col] +
				orig[row][1]*v[1][col] +
				orig[row][2]*v[2][col]
			assert.InDelta(t, d[col]*v[row][col], av, 1e-10,
				"column %d row %d", col, row)
		}
	}
}
