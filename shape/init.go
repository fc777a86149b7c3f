package shape

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/granular-dem/shcontact/geom"
	"github.com/granular-dem/shcontact/math/quad"
	"github.com/granular-dem/shcontact/math/sphharm"
)

// ErrVolumeZero is returned when the quadrature volume of a shape is
// not positive, which makes the inertia tensor undefined.
var ErrVolumeZero = errors.New("shape: non-positive volume")

// Options configures Build. NMax and NQuad are required; zero values
// of the remaining fields pick the defaults noted on each.
type Options struct {
	// NMax is the maximum expansion degree.
	NMax int
	// NQuad is the per-axis surface quadrature order.
	NQuad int
	// Safety inflates the expansion factors and the bounding radius.
	// Defaults to 1.
	Safety float64
	// Verbose enables initializer diagnostics on Logger.
	Verbose bool
	Logger  golog.Logger
}

// Build derives a full Shape from packed expansion coefficients: the
// surface quadrature grid and radii, volume, principal inertia and
// orientation, the per-degree expansion factors and the bounding
// radius. coeffs must have length CoeffLen(nmax) and is copied.
func Build(coeffs []float64, opts Options) (*Shape, error) {
	if opts.NMax < 1 || opts.NQuad < 2 {
		return nil, errors.Errorf(
			"shape: invalid build options: max degree %d, quadrature %d",
			opts.NMax, opts.NQuad,
		)
	}
	if len(coeffs) != CoeffLen(opts.NMax) {
		return nil, errors.Errorf(
			"shape: got %d coefficient values, max degree %d needs %d",
			len(coeffs), opts.NMax, CoeffLen(opts.NMax),
		)
	}
	if opts.Safety == 0 {
		opts.Safety = 1
	}

	s := &Shape{
		NMax:   opts.NMax,
		NQuad:  opts.NQuad,
		Coeffs: append([]float64(nil), coeffs...),
	}

	nq := opts.NQuad
	s.Weights = make([]float64, nq)
	absc := make([]float64, nq)
	for i := 0; i < nq; i++ {
		p := quad.GLPair(nq, i+1)
		s.Weights[i] = p.Weight
		absc[i] = p.X()
	}

	nq2 := nq * nq
	s.Thetas = make([]float64, nq2)
	s.Phis = make([]float64, nq2)
	k := 0
	for i := 0; i < nq; i++ {
		for j := 0; j < nq; j++ {
			s.Thetas[k] = 0.5 * math.Pi * (absc[i] + 1)
			s.Phis[k] = math.Pi * (absc[j] + 1)
			k++
		}
	}

	ws := NewWorkspace(s.NMax)
	s.QuadRads = make([]float64, nq2)
	for k := 0; k < nq2; k++ {
		s.QuadRads[k] = s.Radius(ws, s.Thetas[k], s.Phis[k])
	}

	if err := s.initInertia(ws, opts); err != nil {
		return nil, err
	}
	s.initExpansionFactors(opts.Safety)

	if opts.Verbose && opts.Logger != nil {
		opts.Logger.Debugf("bounding radius %g, degree-0 bound %g",
			s.MaxRad,
			s.ExpFacts[0]*s.Coeffs[0]*math.Sqrt(1/(4*math.Pi)))
	}
	return s, nil
}

// initInertia integrates the volume and the six independent inertia
// components over the quadrature grid, diagonalizes, and records the
// principal frame.
func (s *Shape) initInertia(ws *Workspace, opts Options) error {
	var i11, i22, i33, i12, i13, i23, vol float64
	nq := s.NQuad
	k := 0
	for i := 0; i < nq; i++ {
		for j := 0; j < nq; j++ {
			st, ct := math.Sincos(s.Thetas[k])
			sp, cp := math.Sincos(s.Phis[k])
			r := s.QuadRads[k]
			wij := s.Weights[i] * s.Weights[j]
			fact := 0.2 * wij * math.Pow(r, 5) * st
			vol += wij * r * r * r * st / 3
			i11 += fact * (1 - cp*st*cp*st)
			i22 += fact * (1 - sp*st*sp*st)
			i33 += fact * (1 - ct*ct)
			i12 -= fact * cp * sp * st * st
			i13 -= fact * cp * ct * st
			i23 -= fact * sp * ct * st
			k++
		}
	}

	factor := 0.5 * math.Pi * math.Pi
	vol *= factor
	i11 *= factor
	i22 *= factor
	i33 *= factor
	i12 *= factor
	i13 *= factor
	i23 *= factor

	if vol <= 0 {
		return errors.Wrapf(ErrVolumeZero, "volume = %g", vol)
	}
	i11 /= vol
	i22 /= vol
	i33 /= vol
	i12 /= vol
	i13 /= vol
	i23 /= vol
	s.Volume = vol

	if opts.Verbose && opts.Logger != nil {
		opts.Logger.Debugf("volume %g, pole-axis volume %g",
			vol, s.poleAxisVolume(ws))
		opts.Logger.Debugf("inertia tensor %g %g %g %g %g %g",
			i11, i22, i33, i12, i13, i23)
	}

	tensor := [3][3]float64{
		{i11, i12, i13},
		{i12, i22, i23},
		{i13, i23, i33},
	}
	evals, evecs, err := jacobi3(&tensor)
	if err != nil {
		return err
	}

	// Principal moments far below the dominant one are quadrature
	// noise. Clamp them to zero.
	const epsilon = 1e-7
	max := math.Max(evals[0], math.Max(evals[1], evals[2]))
	for i := range evals {
		if evals[i] < epsilon*max {
			evals[i] = 0
		}
	}

	ex := mgl64.Vec3{evecs[0][0], evecs[1][0], evecs[2][0]}
	ey := mgl64.Vec3{evecs[0][1], evecs[1][1], evecs[2][1]}
	ez := mgl64.Vec3{evecs[0][2], evecs[1][2], evecs[2][2]}
	s.PrincipalInertia = mgl64.Vec3{evals[0], evals[1], evals[2]}
	s.QuatInit = geom.BasisQuat(ex, ey, ez)

	if opts.Verbose && opts.Logger != nil {
		opts.Logger.Debugf("principal inertia %v", s.PrincipalInertia)
		opts.Logger.Debugf("principal frame quaternion %v", s.QuatInit)
	}
	return nil
}

// poleAxisVolume estimates the volume a second way, with Gaussian
// nodes along the polar axis and a trapezoid sweep in azimuth. It only
// serves as a cross-check on the grid volume.
func (s *Shape) poleAxisVolume(ws *Workspace) float64 {
	trapL := 2 * (s.NQuad - 1)
	vol := 0.0
	for ll := 0; ll <= trapL; ll++ {
		phi := 2 * math.Pi * float64(ll) / float64(trapL+1)
		for kk := 0; kk < s.NQuad; kk++ {
			p := quad.GLPair(s.NQuad, kk+1)
			theta := 0.5*math.Pi*p.X() + 0.5*math.Pi
			r := s.Radius(ws, theta, phi)
			vol += p.Weight * r * r * r * math.Sin(theta)
		}
	}
	return vol * (math.Pi * math.Pi / float64(trapL+1)) / 3
}

// initExpansionFactors measures, on the quadrature grid, how much the
// partial radius can still grow between each degree and the next, and
// folds the per-degree ratios into cumulative bounding factors.
func (s *Shape) initExpansionFactors(safety float64) {
	nq2 := s.NQuad * s.NQuad
	rn := make([]float64, nq2)
	ratios := make([]float64, nq2)
	expf := make([]float64, s.NMax+1)
	expf[s.NMax] = 1
	maxRad := 0.0

	for n := 0; n <= s.NMax; n++ {
		for k := 0; k < nq2; k++ {
			x := math.Cos(s.Thetas[k])
			phi := s.Phis[k]
			rn[k] += s.degreeTerm(n, x, phi)
			if n < s.NMax {
				rnpo := rn[k] + s.degreeTerm(n+1, x, phi)
				ratios[k] = rnpo / rn[k]
			} else if rn[k] > maxRad {
				maxRad = rn[k]
			}
		}
		if n < s.NMax {
			maxVal := 0.0
			for _, rat := range ratios {
				if rat > maxVal {
					maxVal = rat
				}
			}
			if maxVal < 1 {
				maxVal = 1
			}
			expf[n] = maxVal
		}
	}

	s.ExpFacts = make([]float64, s.NMax+1)
	factor := expf[s.NMax]
	for n := s.NMax - 1; n >= 0; n-- {
		factor *= expf[n] * safety
		s.ExpFacts[n] = factor
	}
	s.ExpFacts[s.NMax] = 1
	s.MaxRad = maxRad * safety
}

// degreeTerm evaluates the degree-n radius contribution directly,
// without recurrence recycling. Used only during initialization.
func (s *Shape) degreeTerm(n int, x, phi float64) float64 {
	c := s.Coeffs
	p, _ := sphharm.Plegendre(n, 0, x)
	sum := c[Loc(n, 0)] * p
	loc := n * (n + 1)
	for m := n; m > 0; m-- {
		p, _ = sphharm.Plegendre(n, m, x)
		smp, cmp := math.Sincos(float64(m) * phi)
		sum += (c[loc]*cmp - c[loc+1]*smp) * 2 * p
		loc += 2
	}
	return sum
}
