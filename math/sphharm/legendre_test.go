package sphharm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granular-dem/shcontact/math/quad"
)

func TestPlegendreKnownValues(t *testing.T) {
	p, err := Plegendre(0, 0, 0.3)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1/(4*math.Pi)), p, 1e-14, "degree 0")

	p, err = Plegendre(1, 0, 0.3)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(3/(4*math.Pi))*0.3, p, 1e-14, "n=1 m=0")
}

func TestPlegendreDomain(t *testing.T) {
	_, err := Plegendre(2, 3, 0.5)
	assert.Error(t, err, "order above degree")
	_, err = Plegendre(2, -1, 0.5)
	assert.Error(t, err, "negative order")
	_, err = Plegendre(2, 1, 1.5)
	assert.Error(t, err, "argument outside [-1, 1]")
}

func TestPlegendreOrthonormal(t *testing.T) {
	// Integrating pairs of normalized functions over x recovers the
	// 1/(2 pi) azimuthal share of the unit normalization.
	const order = 64
	for m := 0; m <= 3; m++ {
		for n1 := m; n1 <= 6; n1++ {
			for n2 := m; n2 <= 6; n2++ {
				sum := 0.0
				for k := 1; k <= order; k++ {
					gp := quad.GLPair(order, k)
					p1, err := Plegendre(n1, m, gp.X())
					require.NoError(t, err)
					p2, err := Plegendre(n2, m, gp.X())
					require.NoError(t, err)
					sum += gp.Weight * p1 * p2
				}
				want := 0.0
				if n1 == n2 {
					want = 1 / (2 * math.Pi)
				}
				assert.InDelta(t, want, sum, 1e-12,
					"n1=%d n2=%d m=%d", n1, n2, m)
			}
		}
	}
}

func TestPlegendreRecycle(t *testing.T) {
	x := 0.42
	for n := 2; n <= 8; n++ {
		for m := 0; m <= n-2; m++ {
			p1, err := Plegendre(n-1, m, x)
			require.NoError(t, err)
			p2, err := Plegendre(n-2, m, x)
			require.NoError(t, err)
			want, err := Plegendre(n, m, x)
			require.NoError(t, err)
			got := PlegendreRecycle(n, m, x, p1, p2)
			assert.InDelta(t, want, got, 1e-13, "n=%d m=%d", n, m)
		}
	}
}

func TestPlegendreNN(t *testing.T) {
	x := -0.27
	for n := 1; n <= 8; n++ {
		prev, err := Plegendre(n-1, n-1, x)
		require.NoError(t, err)
		want, err := Plegendre(n, n, x)
		require.NoError(t, err)
		assert.InDelta(t, want, PlegendreNN(n, x, prev), 1e-13, "n=%d", n)
	}
}

func TestPlgndrAgainstClosedForms(t *testing.T) {
	x := 0.6
	s := math.Sqrt(1 - x*x)

	p, err := Plgndr(2, 0, x)
	assert.NoError(t, err)
	assert.InDelta(t, (3*x*x-1)/2, p, 1e-14, "P20")

	p, err = Plgndr(2, 1, x)
	assert.NoError(t, err)
	assert.InDelta(t, -3*x*s, p, 1e-14, "P21")

	p, err = Plgndr(2, 2, x)
	assert.NoError(t, err)
	assert.InDelta(t, 3*(1-x*x), p, 1e-14, "P22")
}

func TestFnmRelatesNormalizations(t *testing.T) {
	x := 0.35
	for n := 0; n <= 6; n++ {
		for m := 0; m <= n; m++ {
			raw, err := Plgndr(n, m, x)
			assert.NoError(t, err)
			norm, err := Plegendre(n, m, x)
			assert.NoError(t, err)
			assert.InDelta(t, norm, Fnm(n, m)*raw, 1e-12,
				"n=%d m=%d", n, m)
		}
	}
}
