package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granular-dem/shcontact/geom"
	"github.com/granular-dem/shcontact/math/sphharm"
)

// sphereCoeffs packs the expansion of a sphere of radius r.
func sphereCoeffs(nmax int, r float64) []float64 {
	c := make([]float64, CoeffLen(nmax))
	c[0] = r * math.Sqrt(4*math.Pi)
	return c
}

func TestLoc(t *testing.T) {
	assert.Equal(t, 0, Loc(0, 0), "degree 0")
	assert.Equal(t, 4, Loc(1, 0), "n=1 m=0")
	assert.Equal(t, 2, Loc(1, 1), "n=1 m=1")
	assert.Equal(t, 10, Loc(2, 0), "n=2 m=0")
	assert.Equal(t, 8, Loc(2, 1), "n=2 m=1")
	assert.Equal(t, 6, Loc(2, 2), "n=2 m=2")
}

func TestCoeffLen(t *testing.T) {
	assert.Equal(t, 2, CoeffLen(0), "degree 0")
	assert.Equal(t, 6, CoeffLen(1), "degree 1")
	assert.Equal(t, 12, CoeffLen(2), "degree 2")

	// Every (n, m) slot lands inside the packed vector, each exactly
	// once.
	nmax := 5
	seen := map[int]bool{}
	for n := 0; n <= nmax; n++ {
		for m := 0; m <= n; m++ {
			l := Loc(n, m)
			assert.True(t, l >= 0 && l+1 < CoeffLen(nmax),
				"in bounds, n=%d m=%d", n, m)
			assert.False(t, seen[l], "distinct, n=%d m=%d", n, m)
			seen[l] = true
		}
	}
}

func TestRadiusSphere(t *testing.T) {
	s := &Shape{NMax: 4, Coeffs: sphereCoeffs(4, 2.5)}
	ws := NewWorkspace(s.NMax)
	for _, theta := range []float64{0.2, 1.1, math.Pi / 2, 2.9} {
		for _, phi := range []float64{0, 1.5, 3.7, 6.1} {
			assert.InDelta(t, 2.5, s.Radius(ws, theta, phi), 1e-12,
				"theta=%g phi=%g", theta, phi)
		}
	}
}

func TestRadiusMatchesDirectSum(t *testing.T) {
	// A degree-2 perturbed sphere against term-by-term evaluation
	// with the normalized Legendre functions.
	c := sphereCoeffs(2, 1)
	c[Loc(2, 0)] = 0.2
	c[Loc(2, 1)] = 0.05
	c[Loc(2, 1)+1] = -0.03
	s := &Shape{NMax: 2, Coeffs: c}
	ws := NewWorkspace(s.NMax)

	theta, phi := 1.1, 2.3
	x := math.Cos(theta)
	p20, err := sphharm.Plegendre(2, 0, x)
	require.NoError(t, err)
	p21, err := sphharm.Plegendre(2, 1, x)
	require.NoError(t, err)
	sp, cp := math.Sincos(phi)
	want := c[0]*math.Sqrt(1/(4*math.Pi)) +
		c[Loc(2, 0)]*p20 +
		(c[Loc(2, 1)]*cp-c[Loc(2, 1)+1]*sp)*2*p21

	assert.InDelta(t, want, s.Radius(ws, theta, phi), 1e-12)
}

func TestRadiusAndNormalSphere(t *testing.T) {
	r := 1.7
	s := &Shape{NMax: 3, Coeffs: sphereCoeffs(3, r)}
	ws := NewWorkspace(s.NMax)

	theta, phi := 0.9, 4.2
	rad, norm := s.RadiusAndNormal(ws, theta, phi)
	assert.InDelta(t, r, rad, 1e-10, "radius")

	// The non-unit normal of a sphere is r^2 sin(theta) along the
	// radial direction.
	want := geom.SphereToCart(1, theta, phi).Mul(r * r * math.Sin(theta))
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], norm[i], 1e-6, "component %d", i)
	}
}

func TestWorkspaceReuse(t *testing.T) {
	c := sphereCoeffs(3, 1)
	c[Loc(3, 2)] = 0.1
	s := &Shape{NMax: 3, Coeffs: c}

	ws := NewWorkspace(s.NMax)
	first := s.Radius(ws, 0.8, 1.9)
	for i := 0; i < 4; i++ {
		assert.Equal(t, first, s.Radius(ws, 0.8, 1.9), "call %d", i)
	}

	small := NewWorkspace(1)
	assert.Equal(t, first, s.Radius(small, 0.8, 1.9), "workspace grows")
}

func TestA(t *testing.T) {
	c := sphereCoeffs(2, 1)
	c[Loc(2, 1)] = 0.4
	c[Loc(2, 1)+1] = -0.2
	s := &Shape{NMax: 2, Coeffs: c}
	a := s.A(2, 1)
	assert.Equal(t, 0.4, real(a), "real part")
	assert.Equal(t, -0.2, imag(a), "imaginary part")
}
