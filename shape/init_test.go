package shape

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSphere(t *testing.T) {
	r := 1.3
	s, err := Build(sphereCoeffs(4, r), Options{NMax: 4, NQuad: 30})
	require.NoError(t, err)

	assert.InEpsilon(t, 4*math.Pi/3*r*r*r, s.Volume, 1e-6, "volume")
	assert.InEpsilon(t, r, s.MaxRad, 1e-6, "bounding radius")

	// Unit-density sphere inertia per mass is 2 r^2 / 5 on every axis.
	for i := 0; i < 3; i++ {
		assert.InEpsilon(t, 2*r*r/5, s.PrincipalInertia[i], 1e-4,
			"principal moment %d", i)
	}

	q := s.QuatInit
	n := math.Sqrt(q.W*q.W + q.V.Dot(q.V))
	assert.InDelta(t, 1, n, 1e-10, "unit principal frame quaternion")
}

func TestBuildVolumeCrossCheck(t *testing.T) {
	c := sphereCoeffs(4, 1)
	c[Loc(2, 0)] = 0.2
	c[Loc(4, 3)] = 0.03
	s, err := Build(c, Options{NMax: 4, NQuad: 30})
	require.NoError(t, err)

	ws := NewWorkspace(s.NMax)
	assert.InEpsilon(t, s.Volume, s.poleAxisVolume(ws), 1e-4,
		"pole-axis volume agrees with the grid volume")
}

func TestBuildSafetyInflatesBounds(t *testing.T) {
	c := sphereCoeffs(3, 1)
	c[Loc(2, 1)] = 0.1
	tight, err := Build(c, Options{NMax: 3, NQuad: 20})
	require.NoError(t, err)
	loose, err := Build(c, Options{NMax: 3, NQuad: 20, Safety: 1.1})
	require.NoError(t, err)

	assert.True(t, loose.MaxRad > tight.MaxRad, "bounding radius grows")
	for n := 0; n < 3; n++ {
		assert.True(t, loose.ExpFacts[n] > tight.ExpFacts[n],
			"factor %d grows", n)
	}
}

func TestBuildRejectsBadOptions(t *testing.T) {
	c := sphereCoeffs(2, 1)
	_, err := Build(c, Options{NMax: 0, NQuad: 10})
	assert.Error(t, err, "degree zero")
	_, err = Build(c, Options{NMax: 2, NQuad: 1})
	assert.Error(t, err, "single-node quadrature")
	_, err = Build(c[:4], Options{NMax: 2, NQuad: 10})
	assert.Error(t, err, "short coefficient vector")
}

func TestBuildZeroVolume(t *testing.T) {
	c := make([]float64, CoeffLen(2))
	_, err := Build(c, Options{NMax: 2, NQuad: 10})
	require.Error(t, err)
	assert.Equal(t, ErrVolumeZero, errors.Cause(err), "zero surface")
}

func TestBuildCopiesCoefficients(t *testing.T) {
	c := sphereCoeffs(2, 1)
	s, err := Build(c, Options{NMax: 2, NQuad: 10})
	require.NoError(t, err)
	c[0] = 0
	assert.NotEqual(t, 0.0, s.Coeffs[0], "input slice is not aliased")
}
