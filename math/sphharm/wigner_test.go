package sphharm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWignerDIdentityAtZero(t *testing.T) {
	tab, err := WignerD(4, 0)
	require.NoError(t, err)
	for n := 0; n <= 4; n++ {
		for mp := -n; mp <= n; mp++ {
			for m := -n; m <= n; m++ {
				want := 0.0
				if mp == m {
					want = 1
				}
				assert.InDelta(t, want, tab.D(n, mp, m), 1e-8,
					"n=%d mp=%d m=%d", n, mp, m)
			}
		}
	}
}

func TestWignerDOrthogonal(t *testing.T) {
	// Each degree block is an orthogonal matrix for any polar angle.
	for _, beta := range []float64{0.4, 1.3, 2.8} {
		tab, err := WignerD(5, beta)
		require.NoError(t, err)
		for n := 0; n <= 5; n++ {
			for m1 := -n; m1 <= n; m1++ {
				for m2 := -n; m2 <= n; m2++ {
					sum := 0.0
					for mp := -n; mp <= n; mp++ {
						sum += tab.D(n, mp, m1) * tab.D(n, mp, m2)
					}
					want := 0.0
					if m1 == m2 {
						want = 1
					}
					assert.InDelta(t, want, sum, 1e-10,
						"beta=%g n=%d m1=%d m2=%d", beta, n, m1, m2)
				}
			}
		}
	}
}

func TestWignerDIndependentOfDepth(t *testing.T) {
	// Degrees 0 and 1 come straight from the closed form and degree 2
	// from the recursion. A table built to depth 2 and one built to
	// depth 4 must agree on every shared entry.
	t1, err := WignerD(2, 0.9)
	require.NoError(t, err)
	t2, err := WignerD(4, 0.9)
	require.NoError(t, err)
	for n := 0; n <= 2; n++ {
		for mp := -n; mp <= n; mp++ {
			for m := -n; m <= n; m++ {
				assert.InDelta(t, t1.D(n, mp, m), t2.D(n, mp, m), 1e-12,
					"n=%d mp=%d m=%d", n, mp, m)
			}
		}
	}
}

func TestWignerDDegenerate(t *testing.T) {
	_, err := WignerD(3, -0.1)
	assert.Error(t, err, "negative polar angle")
	_, err = WignerD(3, 3.2)
	assert.Error(t, err, "polar angle past pi")
}
